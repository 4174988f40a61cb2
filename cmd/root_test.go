package cmd

import (
	"testing"

	"github.com/samber/mo"
	"github.com/shibi-dl/shibi/config"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/piped"
	. "github.com/smartystreets/goconvey/convey"
)

func TestContainerChoices(t *testing.T) {
	Convey("Container picker options", t, func() {
		desc := config.Default[key.DownloadsContainer].Description

		Convey("Every offered container is documented", func() {
			for _, container := range containers {
				So(desc, ShouldContainSubstring, container)
			}
		})

		Convey("No unoffered container is advertised", func() {
			So(desc, ShouldNotContainSubstring, "mp3")
		})
	})
}

func TestAudioOptions(t *testing.T) {
	Convey("Audio stream picker options", t, func() {
		streams := []*piped.Stream{
			{Codec: "mp4a.40.2", Quality: "128 kbps", Itag: mo.Some(140), MimeType: "audio/mp4"},
			{Codec: "mp4a.40.2", Quality: "48 kbps", Itag: mo.Some(139), MimeType: "audio/mp4"},
		}

		Convey("The silent opt-out is always offered last", func() {
			options := audioOptions(streams)

			So(options, ShouldHaveLength, len(streams)+1)
			So(options[len(options)-1], ShouldEqual, noAudio)
		})
	})
}
