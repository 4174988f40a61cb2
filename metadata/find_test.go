package metadata

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClosest(t *testing.T) {
	Convey("Closest track matching", t, func() {
		candidates := []*Metadata{
			{Title: "Never Gonna Give You Up", Artist: "Rick Astley"},
			{Title: "Together Forever", Artist: "Rick Astley"},
			{Title: "Never Gonna Give You Up (Remastered)", Artist: "Rick Astley"},
		}

		Convey("Should pick the smallest edit distance", func() {
			best, ok := closest("never gonna give you up", candidates).Get()
			So(ok, ShouldBeTrue)
			So(best.Title, ShouldEqual, "Never Gonna Give You Up")
		})

		Convey("Should compare case-insensitively", func() {
			best, ok := closest("TOGETHER FOREVER", candidates).Get()
			So(ok, ShouldBeTrue)
			So(best.Title, ShouldEqual, "Together Forever")
		})

		Convey("Should be None without candidates", func() {
			So(closest("anything", nil).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestCover(t *testing.T) {
	Convey("Cover art upscaling", t, func() {
		m := &Metadata{CoverURL: "https://example.com/a/100x100bb.jpg"}
		So(m.Cover(), ShouldEqual, "https://example.com/a/1000x1000bb.jpg")
	})
}

func TestYear(t *testing.T) {
	Convey("Release year extraction", t, func() {
		So((&Metadata{ReleaseDate: "1987-07-27T07:00:00Z"}).Year(), ShouldEqual, "1987")
		So((&Metadata{ReleaseDate: ""}).Year(), ShouldEqual, "")
	})
}
