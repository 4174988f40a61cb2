package piped

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/key"
	"github.com/spf13/viper"
)

// Stream filters. The excluded containers and format tags form a
// maintained denylist, so they live in configuration rather than code.

// FilterAudio retains audio records whose MIME type starts with "audio"
// and whose container and format tag are not denylisted.
func FilterAudio(streams []*Stream) []*Stream {
	blocked := viper.GetStringSlice(key.FiltersAudioContainers)

	return lo.Filter(streams, func(s *Stream, _ int) bool {
		return strings.HasPrefix(s.MimeType, "audio") &&
			!lo.Contains(blocked, s.Container()) &&
			!itagBlocked(s)
	})
}

// FilterVideo retains video records whose MIME type starts with "video",
// whose quality label carries a height-in-pixels marker ("p"), and whose
// container and format tag are not denylisted.
func FilterVideo(streams []*Stream) []*Stream {
	blocked := viper.GetStringSlice(key.FiltersVideoContainers)

	return lo.Filter(streams, func(s *Stream, _ int) bool {
		return strings.HasPrefix(s.MimeType, "video") &&
			strings.Contains(s.Quality, "p") &&
			!lo.Contains(blocked, s.Container()) &&
			!itagBlocked(s)
	})
}

func itagBlocked(s *Stream) bool {
	itag, ok := s.Itag.Get()
	if !ok {
		return false
	}
	return lo.Contains(viper.GetIntSlice(key.FiltersItags), itag)
}
