package download

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/shibi-dl/shibi/constant"
	"github.com/shibi-dl/shibi/filesystem"
	"github.com/shibi-dl/shibi/network"
	"github.com/shibi-dl/shibi/piped"
)

// fetch streams the record's bytes to the given path, reporting written
// bytes against the record's authoritative size as the copy advances.
func fetch(ctx context.Context, stream *piped.Stream, path string, report func(*piped.Stream, int64, int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, stream.URL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Do(req)
	if err != nil {
		return fmt.Errorf("stream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	file, err := filesystem.API().Create(path)
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	defer file.Close()

	var dst io.Writer = file
	if report != nil {
		dst = io.MultiWriter(file, &progressWriter{stream: stream, report: report})
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("write staging file: %w", err)
	}

	return nil
}

// fetchURL retrieves an auxiliary resource (cover art) to the given path.
func fetchURL(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resource returned status %d", resp.StatusCode)
	}

	file, err := filesystem.API().Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, resp.Body)
	return err
}

// progressWriter reports cumulative written bytes per stream.
type progressWriter struct {
	stream  *piped.Stream
	written int64
	report  func(*piped.Stream, int64, int64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	w.report(w.stream, w.written, w.stream.Size)
	return len(p), nil
}
