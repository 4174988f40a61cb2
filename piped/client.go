package piped

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shibi-dl/shibi/constant"
	"github.com/shibi-dl/shibi/network"
	"github.com/samber/mo"
)

// streamsResponse is the wire shape of the mirror metadata endpoint
// GET {host}/streams/{videoID}.
type streamsResponse struct {
	Title        string       `json:"title"`
	Category     string       `json:"category"`
	Description  string       `json:"description"`
	ThumbnailURL string       `json:"thumbnailUrl"`
	UploadDate   string       `json:"uploadDate"`
	Uploader     string       `json:"uploader"`
	VideoStreams []streamJSON `json:"videoStreams"`
	AudioStreams []streamJSON `json:"audioStreams"`
}

type streamJSON struct {
	URL      string `json:"url"`
	Codec    string `json:"codec"`
	Quality  string `json:"quality"`
	MimeType string `json:"mimeType"`
	Itag     *int   `json:"itag"`
}

func (s streamJSON) toStream() *Stream {
	itag := mo.None[int]()
	if s.Itag != nil {
		itag = mo.Some(*s.Itag)
	}

	return &Stream{
		URL:      s.URL,
		Codec:    s.Codec,
		Quality:  s.Quality,
		MimeType: s.MimeType,
		Itag:     itag,
	}
}

// fetchStreams retrieves a mirror's stream-list view of the given video.
func fetchStreams(ctx context.Context, host, videoID string) (*streamsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/streams/%s", host, videoID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mirror returned status %d", resp.StatusCode)
	}

	var data streamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse mirror response: %w", err)
	}

	return &data, nil
}

// headContentLength issues a header-only request against a stream URL.
// It returns the advertised byte size and whether the content-length
// header was present at all.
func headContentLength(ctx context.Context, url string) (size int64, present bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("head request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("head returned status %d", resp.StatusCode)
	}

	header := resp.Header.Get("Content-Length")
	if header == "" {
		return 0, false, nil
	}

	size, err = strconv.ParseInt(header, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse content-length: %w", err)
	}

	return size, true, nil
}
