// Package metadata resolves music metadata for downloads via the iTunes Search API.
package metadata

import (
	"strings"
)

// Metadata is a single track record as returned by the iTunes Search API.
type Metadata struct {
	Title       string `json:"trackName"`
	Artist      string `json:"artistName"`
	Album       string `json:"collectionName"`
	Genre       string `json:"primaryGenreName"`
	ReleaseDate string `json:"releaseDate"`
	CoverURL    string `json:"artworkUrl100"`
}

// Cover returns the cover art address upscaled from the API's thumbnail size.
func (m *Metadata) Cover() string {
	return strings.Replace(m.CoverURL, "100x100", "1000x1000", 1)
}

// Year returns the release year portion of the release timestamp.
func (m *Metadata) Year() string {
	if len(m.ReleaseDate) < 4 {
		return m.ReleaseDate
	}
	return m.ReleaseDate[:4]
}

func (m *Metadata) String() string {
	return m.Artist + " - " + m.Title
}

// normalized returns a lowercased, trimmed string for consistent comparison.
func normalized(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
