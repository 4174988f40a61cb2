package ffmpeg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// buildArgs translates a job into an ffmpeg argument list. Inputs are
// stream-copied, never re-encoded; combination is pure container work.
func buildArgs(job Job) ([]string, error) {
	video := job.VideoPath != ""
	audio := job.AudioPath != ""

	if !video && !audio {
		return nil, errors.New("job has no inputs")
	}
	if job.OutputPath == "" {
		return nil, errors.New("job has no output path")
	}

	for _, path := range []string{job.VideoPath, job.AudioPath, job.CoverPath, job.OutputPath} {
		if err := checkPath(path); err != nil {
			return nil, err
		}
	}

	var (
		inputs []string
		output []string
		count  int
	)
	add := func(path string) int {
		inputs = append(inputs, "-i", path)
		count++
		return count - 1
	}

	switch {
	case video && audio:
		v := add(job.VideoPath)
		a := add(job.AudioPath)
		output = append(output,
			"-map", fmt.Sprintf("%d:v:0", v),
			"-map", fmt.Sprintf("%d:a:0", a),
			"-c", "copy",
			"-shortest",
			"-movflags", "frag_keyframe+empty_moov",
		)

	case video:
		v := add(job.VideoPath)
		output = append(output, "-map", fmt.Sprintf("%d:v:0", v), "-c", "copy")

	default:
		a := add(job.AudioPath)
		output = append(output, "-map", fmt.Sprintf("%d:a:0", a))
		if job.CoverPath != "" {
			c := add(job.CoverPath)
			output = append(output, "-map", strconv.Itoa(c), "-disposition:v:0", "attached_pic")
		}
		output = append(output, "-c", "copy")
	}

	// Deterministic tag order.
	tags := make([]string, 0, len(job.Tags))
	for tag := range job.Tags {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, tag := range tags {
		output = append(output, "-metadata", fmt.Sprintf("%s=%s", tag, job.Tags[tag]))
	}

	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-nostats", "-progress", "pipe:1"}
	args = append(args, inputs...)
	args = append(args, output...)
	args = append(args, job.OutputPath)

	return args, nil
}

// checkPath validates that a path is safe to pass as an argument.
func checkPath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsAny(path, "\x00\n\r") {
		return fmt.Errorf("invalid control characters in path %q", path)
	}
	if strings.HasPrefix(path, "-") {
		return fmt.Errorf("path %q must not start with '-' (looks like a flag)", path)
	}
	return nil
}
