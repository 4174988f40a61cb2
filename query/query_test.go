package query

import (
	"testing"

	"github.com/shibi-dl/shibi/filesystem"
	"github.com/shibi-dl/shibi/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Query history", t, func() {
		So(Remember("lofi hip hop radio", 1), ShouldBeNil)
		So(Remember("lofi girl", 10), ShouldBeNil)

		Convey("Suggestions should be sorted by rank", func() {
			suggestionCache = make(map[string][]*queryRecord)

			s := SuggestMany("lofi")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "lofi girl")
		})

		Convey("Input should be sanitized", func() {
			So(sanitize("  Lofi Girl  "), ShouldEqual, "lofi girl")
		})
	})
}

func TestVideoID(t *testing.T) {
	Convey("Video identifier extraction", t, func() {
		expect := func(input string) {
			id, ok := VideoID(input).Get()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "jNQXAC9IVRw")
		}

		Convey("Should accept a bare identifier", func() {
			expect("jNQXAC9IVRw")
			expect("  jNQXAC9IVRw  ")
		})

		Convey("Should extract from every URL shape", func() {
			expect("https://www.youtube.com/watch?v=jNQXAC9IVRw")
			expect("https://www.youtube.com/watch?list=PL123&v=jNQXAC9IVRw")
			expect("https://youtu.be/jNQXAC9IVRw")
			expect("https://youtu.be/jNQXAC9IVRw?t=10")
			expect("https://www.youtube.com/embed/jNQXAC9IVRw")
			expect("https://www.youtube.com/v/jNQXAC9IVRw")
			expect("https://www.youtube.com/shorts/jNQXAC9IVRw")
			expect("https://www.youtube.com/live/jNQXAC9IVRw")
		})

		Convey("Should be None for everything else", func() {
			So(VideoID("").IsAbsent(), ShouldBeTrue)
			So(VideoID("not a link").IsAbsent(), ShouldBeTrue)
			So(VideoID("https://example.com/watch?v=jNQXAC9IVRw").IsAbsent(), ShouldBeTrue)
			So(VideoID("https://www.youtube.com/watch?v=short").IsAbsent(), ShouldBeTrue)
		})
	})
}
