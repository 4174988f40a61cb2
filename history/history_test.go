package history

import (
	"testing"

	"github.com/shibi-dl/shibi/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a completed download", t, func() {
		record := &SavedDownload{
			VideoID:   "jNQXAC9IVRw",
			Title:     "Me at the zoo",
			Uploader:  "jawed",
			Quality:   "720p",
			Container: "mp4",
			Path:      "/downloads/Me_at_the_zoo.mp4",
			SizeBytes: 3000,
		}

		Convey("When saving it", func() {
			So(Save(record), ShouldBeNil)

			Convey("Then the registry should contain it with a timestamp", func() {
				saved, err := Get()
				So(err, ShouldBeNil)

				got, ok := saved[record.encode()]
				So(ok, ShouldBeTrue)
				So(got.Title, ShouldEqual, "Me at the zoo")
				So(got.DownloadedAt.IsZero(), ShouldBeFalse)
			})

			Convey("Then removing it should empty the registry", func() {
				So(Remove(record), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				_, ok := saved[record.encode()]
				So(ok, ShouldBeFalse)
			})
		})
	})
}
