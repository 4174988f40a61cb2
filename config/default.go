// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/color"
	"github.com/shibi-dl/shibi/constant"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/style"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Shibi + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.MirrorsCustom, []string{}, "Additional Piped API instances to probe alongside the built-in fleet.\nEach entry is a base URL, e.g. https://pipedapi.example.org")
	register(key.MirrorsOfficial, "https://pipedapi.kavin.rocks", "The official Piped API instance.\nIt is probed like any other mirror but ranked above the rest when healthy")
	register(key.MirrorsProbeVideo, "jNQXAC9IVRw", "Reference video used by the health probe.\nMust be a stable upload that every mirror can serve")
	register(key.MirrorsProbeIndex, 5, "Index into the reference video's stream list used for the latency/CDN probe.\nClamped to the last available stream when the list is shorter")
	register(key.FiltersAudioContainers, []string{"webm"}, "Audio containers excluded from resolved stream lists.\nMaintained denylist, not a fixed law")
	register(key.FiltersVideoContainers, []string{"3gpp"}, "Video containers excluded from resolved stream lists")
	register(key.FiltersItags, []int{}, "Format tags (itags) excluded from resolved stream lists")
	register(key.DownloadsPath, "", "Directory for finished downloads.\nEmpty means ~/Downloads/shibi")
	register(key.DownloadsContainer, "mp4", "Default output container for video downloads.\nAvailable options are: mp4, mkv, webm.\nAudio-only downloads always use m4a")
	register(key.DownloadsOpen, false, "Open the finished file with the system default handler")
	register(key.MetadataFetch, true, "Look up audio metadata (artist, album, cover art) on the iTunes Search API for audio-only downloads\nResults are cached to not spam the API")
	register(key.MetadataSearchLimit, 5, "Limit of iTunes search results considered when matching a video title")
	register(key.NetworkTLSSpoof, false, "Reach mirrors through a Chrome-fingerprint TLS client.\nHelps with instances behind anti-bot gateways")
	register(key.SearchShowQuerySuggestions, true, "Show previously used URLs as suggestions at the prompt")
	register(key.FFmpegPath, "ffmpeg", "Path to the ffmpeg executable")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
	register(key.HistorySaveOnDownload, true, "Save finished downloads to the local history file")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
