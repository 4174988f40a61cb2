// Package ffmpeg defines the abstraction layer for the external media
// processing collaborator. The primary implementation drives the 'ffmpeg'
// binary over its machine-readable progress protocol.
package ffmpeg

import (
	"context"
	"time"
)

// Progress is a single snapshot of a running processing task.
type Progress struct {
	// OutTime is the media timestamp written so far.
	OutTime time.Duration

	// Speed is the processing rate as reported ("1.5x").
	Speed string

	// Done reports whether the task has finished writing.
	Done bool
}

// Job describes one combination task. VideoPath and AudioPath may not
// both be empty; every other field is optional.
type Job struct {
	// VideoPath is the local path of the encoded video input.
	VideoPath string

	// AudioPath is the local path of the encoded audio input.
	AudioPath string

	// CoverPath is the local path of cover art to attach to audio-only outputs.
	CoverPath string

	// OutputPath is where the combined artifact is written.
	OutputPath string

	// Tags are embedded as output metadata (title, artist, album...).
	Tags map[string]string

	// OnProgress, when set, receives snapshots as the task advances.
	OnProgress func(Progress)
}

// Processor encapsulates the required capabilities for a media processing backend.
type Processor interface {
	// Combine muxes the job's inputs into a single output artifact.
	// Only one combination task may run at a time.
	Combine(ctx context.Context, job Job) error

	// Available verifies that the backend binary can be located.
	Available() bool

	// Version retrieves the backend's version banner.
	Version() (string, error)
}
