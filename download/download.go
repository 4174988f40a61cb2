// Package download orchestrates the full artifact pipeline: stream
// fetches into the staging area, optional metadata enrichment, and the
// hand-off to the media processing collaborator.
package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/shibi-dl/shibi/ffmpeg"
	"github.com/shibi-dl/shibi/filesystem"
	"github.com/shibi-dl/shibi/history"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/log"
	"github.com/shibi-dl/shibi/metadata"
	"github.com/shibi-dl/shibi/open"
	"github.com/shibi-dl/shibi/piped"
	"github.com/shibi-dl/shibi/util"
	"github.com/shibi-dl/shibi/where"
	"github.com/spf13/viper"
)

// Options selects what to download and how to observe it. At least one
// of Video and Audio must be set.
type Options struct {
	Video *piped.Stream
	Audio *piped.Stream

	// Processor performs the final combination. Defaults to the ffmpeg binary.
	Processor ffmpeg.Processor

	// OnFetch receives byte-level progress per stream fetch.
	OnFetch func(stream *piped.Stream, written, total int64)

	// OnProcess receives combination progress snapshots.
	OnProcess func(ffmpeg.Progress)
}

// Download runs the whole pipeline for one video and returns the final
// artifact path. Staged inputs are always removed, the artifact only on
// failure.
func Download(ctx context.Context, details *piped.Details, options Options) (string, error) {
	if options.Video == nil && options.Audio == nil {
		return "", errors.New("no streams selected")
	}
	if options.Processor == nil {
		options.Processor = ffmpeg.NewExec()
	}

	var (
		job    ffmpeg.Job
		staged []string
	)
	defer func() {
		for _, path := range staged {
			util.Ignore(func() error { return filesystem.API().Remove(path) })
		}
	}()

	if options.Video != nil {
		path := stagingPath(details.VideoID, "video", options.Video.Container())
		if err := fetch(ctx, options.Video, path, options.OnFetch); err != nil {
			return "", fmt.Errorf("fetch video stream: %w", err)
		}
		staged = append(staged, path)
		job.VideoPath = path
	}

	if options.Audio != nil {
		path := stagingPath(details.VideoID, "audio", options.Audio.Container())
		if err := fetch(ctx, options.Audio, path, options.OnFetch); err != nil {
			return "", fmt.Errorf("fetch audio stream: %w", err)
		}
		staged = append(staged, path)
		job.AudioPath = path
	}

	audioOnly := options.Video == nil
	job.Tags = tags(details)

	if audioOnly && viper.GetBool(key.MetadataFetch) {
		if track, ok := metadata.FindClosest(details.Title).Get(); ok {
			log.Infof("Tagging %q as %s", details.Title, track)
			job.Tags = trackTags(track)

			cover := stagingPath(details.VideoID, "cover", "jpg")
			if err := fetchURL(ctx, track.Cover(), cover); err != nil {
				log.Warnf("cover art fetch failed: %v", err)
			} else {
				staged = append(staged, cover)
				job.CoverPath = cover
			}
		}
	}

	job.OutputPath = artifactPath(details.Title, audioOnly)
	job.OnProgress = options.OnProcess

	if err := options.Processor.Combine(ctx, job); err != nil {
		util.Ignore(func() error { return filesystem.API().Remove(job.OutputPath) })
		return "", err
	}

	if viper.GetBool(key.HistorySaveOnDownload) {
		if err := history.Save(record(details, job.OutputPath, options)); err != nil {
			log.Warnf("saving download history failed: %v", err)
		}
	}

	if viper.GetBool(key.DownloadsOpen) {
		util.Ignore(func() error { return open.Start(job.OutputPath) })
	}

	return job.OutputPath, nil
}

// artifactPath resolves the final output location. Audio-only artifacts
// always land in an m4a container so tags and cover art survive.
func artifactPath(title string, audioOnly bool) string {
	container := viper.GetString(key.DownloadsContainer)
	if audioOnly {
		container = "m4a"
	}

	dir := viper.GetString(key.DownloadsPath)
	if dir == "" {
		dir = where.Downloads()
	}

	return filepath.Join(dir, util.SanitizeFilename(title)+"."+container)
}

func stagingPath(videoID, kind, ext string) string {
	return filepath.Join(where.Temp(), fmt.Sprintf("%s-%s.%s", videoID, kind, ext))
}

func tags(details *piped.Details) map[string]string {
	return map[string]string{
		"title":   details.Title,
		"artist":  details.Uploader,
		"comment": "https://youtu.be/" + details.VideoID,
	}
}

func trackTags(track *metadata.Metadata) map[string]string {
	return map[string]string{
		"title":  track.Title,
		"artist": track.Artist,
		"album":  track.Album,
		"genre":  track.Genre,
		"date":   track.Year(),
	}
}

func record(details *piped.Details, path string, options Options) *history.SavedDownload {
	saved := &history.SavedDownload{
		VideoID:   details.VideoID,
		Title:     details.Title,
		Uploader:  details.Uploader,
		Path:      path,
		Container: filepath.Ext(path)[1:],
	}

	if options.Video != nil {
		saved.Quality = options.Video.Quality
		saved.SizeBytes += options.Video.Size
	}
	if options.Audio != nil {
		if saved.Quality == "" {
			saved.Quality = options.Audio.Quality
		}
		saved.SizeBytes += options.Audio.Size
	}

	return saved
}
