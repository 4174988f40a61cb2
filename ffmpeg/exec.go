package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/log"
	"github.com/spf13/viper"
)

// ErrBusy reports that a combination task is already running.
var ErrBusy = errors.New("another processing task is already running")

// Exec implements the Processor interface by spawning the configured
// ffmpeg binary per task.
type Exec struct {
	mu   sync.Mutex
	busy bool
}

func NewExec() *Exec {
	return &Exec{}
}

func binary() string {
	return viper.GetString(key.FFmpegPath)
}

// Available verifies that the configured binary can be located on PATH.
func (e *Exec) Available() bool {
	_, err := exec.LookPath(binary())
	return err == nil
}

// Version retrieves the first line of the binary's version banner.
func (e *Exec) Version() (string, error) {
	out, err := exec.Command(binary(), "-version").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg unavailable: %w", err)
	}

	banner, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(banner), nil
}

// Combine muxes the job's inputs into the output artifact. The process
// is killed when the context is canceled; a partially written output may
// remain and is the caller's to clean up.
func (e *Exec) Combine(ctx context.Context, job Job) error {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return ErrBusy
	}
	e.busy = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.busy = false
		e.mu.Unlock()
	}()

	args, err := buildArgs(job)
	if err != nil {
		return err
	}

	log.Infof("Running %s %s", binary(), strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, binary(), args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("progress pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	watchProgress(stdout, job.OnProgress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg: %s: %w", msg, err)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}

	return nil
}
