package query

import (
	"regexp"
	"strings"

	"github.com/samber/mo"
	"github.com/shibi-dl/shibi/util"
)

var (
	videoURLPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|shorts/|live/|.*[?&]v=)|youtu\.be/)(?P<id>[^"&?/\s]{11})`)
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// VideoID extracts the 11-character video identifier from a watch URL
// in any of its shapes (watch, short link, embed, shorts, live). Bare
// identifiers pass through unchanged.
func VideoID(input string) mo.Option[string] {
	input = strings.TrimSpace(input)

	if videoIDPattern.MatchString(input) {
		return mo.Some(input)
	}

	if id, ok := util.ReGroups(videoURLPattern, input)["id"]; ok {
		return mo.Some(id)
	}

	return mo.None[string]()
}
