package piped

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/shibi-dl/shibi/util"
)

// Stream represents a single downloadable media stream resolved from a mirror.
// Records are immutable after construction.
type Stream struct {
	// Direct URL to the encoded stream.
	URL string `json:"url" jsonschema:"description=Direct URL to the encoded stream."`
	// Codec identifier (e.g. "avc1.64001F", "opus").
	Codec string `json:"codec" jsonschema:"description=Codec identifier of the stream."`
	// Quality label (e.g. "720p", "1080p60", "128 kbps").
	Quality string `json:"quality" jsonschema:"description=Human-readable quality label."`
	// Format tag correlating an encoding profile across mirrors. Optional.
	Itag mo.Option[int] `json:"itag" jsonschema:"description=Numeric format tag shared by all mirrors for the same encoding profile."`
	// MIME type (e.g. "video/mp4").
	MimeType string `json:"mimeType" jsonschema:"description=MIME type of the stream container."`
	// Authoritative byte size, populated lazily from the CDN mirror.
	Size int64 `json:"sizeInBytes,omitempty" jsonschema:"description=Byte size reported by the CDN mirror."`
}

// Matches reports whether two independently fetched records describe the
// same underlying encoded stream. The format tag wins when both records
// carry one; otherwise the (codec, quality, mimeType) triple must match
// exactly. This rule is the only way to correlate a metadata-server
// record with a CDN-server record.
func (s *Stream) Matches(other *Stream) bool {
	a, aOk := s.Itag.Get()
	b, bOk := other.Itag.Get()
	if aOk && bOk {
		return a == b
	}

	return s.Codec == other.Codec &&
		s.Quality == other.Quality &&
		s.MimeType == other.MimeType
}

// Container returns the container half of the MIME type ("mp4" for "video/mp4").
func (s *Stream) Container() string {
	if _, after, found := strings.Cut(s.MimeType, "/"); found {
		return after
	}
	return s.MimeType
}

// String returns a display label for pickers.
func (s *Stream) String() string {
	if s.Size > 0 {
		return fmt.Sprintf("%s (%s, %s)", s.Quality, s.MimeType, util.Bytes(s.Size))
	}
	return fmt.Sprintf("%s (%s)", s.Quality, s.MimeType)
}

// Details is the byte-size-annotated view of a single video, assembled
// from one resolution call and owned by the caller.
type Details struct {
	VideoID      string    `json:"videoID" jsonschema:"description=YouTube video identifier."`
	Title        string    `json:"title" jsonschema:"description=Video title."`
	Category     string    `json:"category" jsonschema:"description=Video category."`
	Description  string    `json:"description" jsonschema:"description=Video description."`
	ThumbnailURL string    `json:"thumbnailUrl" jsonschema:"description=Thumbnail address."`
	UploadDate   string    `json:"uploadDate" jsonschema:"description=Upload timestamp as reported by the mirror."`
	Uploader     string    `json:"uploader" jsonschema:"description=Uploader channel name."`
	VideoStreams []*Stream `json:"videoStreams" jsonschema:"description=Filtered video streams with authoritative sizes."`
	AudioStreams []*Stream `json:"audioStreams" jsonschema:"description=Filtered audio streams with authoritative sizes."`
}
