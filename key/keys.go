// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Mirror Fleet - these keys govern the set of Piped API instances and the health probe policy.
const (
	MirrorsCustom     = "mirrors.custom"
	MirrorsOfficial   = "mirrors.official"
	MirrorsProbeVideo = "mirrors.probe_video"
	MirrorsProbeIndex = "mirrors.probe_index"
)

// Stream Filters - these keys hold the maintained denylists applied to resolved stream records.
const (
	FiltersAudioContainers = "filters.audio_containers"
	FiltersVideoContainers = "filters.video_containers"
	FiltersItags           = "filters.itags"
)

// Downloads - these keys configure the artifact output location and the default container.
const (
	DownloadsPath      = "downloads.path"
	DownloadsContainer = "downloads.container"
	DownloadsOpen      = "downloads.open"
)

// Metadata Enrichment - these keys govern the iTunes Search lookup for audio-only outputs.
const (
	MetadataFetch       = "metadata.fetch"
	MetadataSearchLimit = "metadata.search_limit"
)

// Network - these keys tune how mirror instances are reached.
const (
	NetworkTLSSpoof = "network.tls_spoof"
)

// Search Interaction - these keys define the UX parameters for the URL prompt.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// External Processing - these keys manage the ffmpeg collaborator.
const (
	FFmpegPath = "ffmpeg.path"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// History Tracking - these keys configure the persistence of completed downloads.
const (
	HistorySaveOnDownload = "history.save_on_download"
)
