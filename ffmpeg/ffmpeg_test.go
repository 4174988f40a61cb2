package ffmpeg

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildArgs(t *testing.T) {
	Convey("Argument construction", t, func() {
		Convey("Video and audio inputs should be mapped and stream-copied", func() {
			args, err := buildArgs(Job{
				VideoPath:  "video.mp4",
				AudioPath:  "audio.m4a",
				OutputPath: "out.mp4",
			})

			So(err, ShouldBeNil)
			line := strings.Join(args, " ")
			So(line, ShouldContainSubstring, "-i video.mp4 -i audio.m4a")
			So(line, ShouldContainSubstring, "-map 0:v:0 -map 1:a:0 -c copy -shortest")
			So(line, ShouldContainSubstring, "-movflags frag_keyframe+empty_moov")
			So(args[len(args)-1], ShouldEqual, "out.mp4")
		})

		Convey("A lone video input should be copied as-is", func() {
			args, err := buildArgs(Job{VideoPath: "video.mp4", OutputPath: "out.mp4"})

			So(err, ShouldBeNil)
			line := strings.Join(args, " ")
			So(line, ShouldContainSubstring, "-map 0:v:0 -c copy")
			So(line, ShouldNotContainSubstring, "-shortest")
		})

		Convey("A lone audio input should attach cover art when present", func() {
			args, err := buildArgs(Job{
				AudioPath:  "audio.m4a",
				CoverPath:  "cover.jpg",
				OutputPath: "out.m4a",
			})

			So(err, ShouldBeNil)
			line := strings.Join(args, " ")
			So(line, ShouldContainSubstring, "-i audio.m4a -i cover.jpg")
			So(line, ShouldContainSubstring, "-map 0:a:0 -map 1 -disposition:v:0 attached_pic")
		})

		Convey("Tags should be embedded in deterministic order", func() {
			args, err := buildArgs(Job{
				AudioPath:  "audio.m4a",
				OutputPath: "out.m4a",
				Tags:       map[string]string{"title": "Zoo", "artist": "jawed"},
			})

			So(err, ShouldBeNil)
			line := strings.Join(args, " ")
			So(line, ShouldContainSubstring, "-metadata artist=jawed -metadata title=Zoo")
		})

		Convey("Jobs without inputs or output should be rejected", func() {
			_, err := buildArgs(Job{OutputPath: "out.mp4"})
			So(err, ShouldNotBeNil)

			_, err = buildArgs(Job{VideoPath: "video.mp4"})
			So(err, ShouldNotBeNil)
		})

		Convey("Flag-shaped and control-character paths should be rejected", func() {
			_, err := buildArgs(Job{VideoPath: "-f", OutputPath: "out.mp4"})
			So(err, ShouldNotBeNil)

			_, err = buildArgs(Job{VideoPath: "a\nb", OutputPath: "out.mp4"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestWatchProgress(t *testing.T) {
	Convey("Progress protocol parsing", t, func() {
		feed := strings.Join([]string{
			"frame=10",
			"out_time_us=1500000",
			"speed=2.1x",
			"progress=continue",
			"out_time_us=3000000",
			"speed=1.9x",
			"progress=end",
		}, "\n")

		var snapshots []Progress
		watchProgress(strings.NewReader(feed), func(p Progress) {
			snapshots = append(snapshots, p)
		})

		So(snapshots, ShouldHaveLength, 2)

		So(snapshots[0].OutTime, ShouldEqual, 1500*time.Millisecond)
		So(snapshots[0].Speed, ShouldEqual, "2.1x")
		So(snapshots[0].Done, ShouldBeFalse)

		So(snapshots[1].OutTime, ShouldEqual, 3*time.Second)
		So(snapshots[1].Done, ShouldBeTrue)
	})
}
