package history

import (
	"fmt"
	"time"

	"github.com/shibi-dl/shibi/util"
)

// SavedDownload represents a single completed download preserved in the
// user's registry.
type SavedDownload struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Uploader     string    `json:"uploader"`
	Quality      string    `json:"quality"`
	Container    string    `json:"container"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

func (s *SavedDownload) encode() string {
	return fmt.Sprintf("%s (%s %s)", s.VideoID, s.Quality, s.Container)
}

func (s *SavedDownload) String() string {
	return fmt.Sprintf("%s : %s %s (%s)", s.Title, s.Quality, s.Container, util.Bytes(s.SizeBytes))
}
