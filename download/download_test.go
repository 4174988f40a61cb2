package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/mo"
	"github.com/shibi-dl/shibi/ffmpeg"
	"github.com/shibi-dl/shibi/filesystem"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/piped"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

// recordingProcessor captures the job instead of spawning ffmpeg.
type recordingProcessor struct {
	job    ffmpeg.Job
	called bool
}

func (p *recordingProcessor) Combine(_ context.Context, job ffmpeg.Job) error {
	p.job = job
	p.called = true
	return nil
}

func (p *recordingProcessor) Available() bool { return true }

func (p *recordingProcessor) Version() (string, error) { return "test", nil }

func TestDownload(t *testing.T) {
	Convey("Download pipeline", t, func() {
		viper.Set(key.NetworkTLSSpoof, false)
		viper.Set(key.MetadataFetch, false)
		viper.Set(key.HistorySaveOnDownload, false)
		viper.Set(key.DownloadsOpen, false)
		viper.Set(key.DownloadsPath, "/downloads")
		viper.Set(key.DownloadsContainer, "mp4")

		payload := []byte("not actually media")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		details := &piped.Details{
			VideoID:  "jNQXAC9IVRw",
			Title:    "Me at the zoo",
			Uploader: "jawed",
		}
		video := &piped.Stream{
			URL: server.URL + "/v", Codec: "avc1", Quality: "720p",
			Itag: mo.Some(22), MimeType: "video/mp4", Size: int64(len(payload)),
		}
		audio := &piped.Stream{
			URL: server.URL + "/a", Codec: "mp4a.40.2", Quality: "128 kbps",
			Itag: mo.Some(140), MimeType: "audio/mp4", Size: int64(len(payload)),
		}

		Convey("Should stage both streams and hand them to the processor", func() {
			var reported []int64
			processor := &recordingProcessor{}

			path, err := Download(context.Background(), details, Options{
				Video:     video,
				Audio:     audio,
				Processor: processor,
				OnFetch: func(_ *piped.Stream, written, total int64) {
					reported = append(reported, written, total)
				},
			})

			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/downloads/Me_at_the_zoo.mp4")

			So(processor.called, ShouldBeTrue)
			So(processor.job.VideoPath, ShouldNotBeEmpty)
			So(processor.job.AudioPath, ShouldNotBeEmpty)
			So(processor.job.OutputPath, ShouldEqual, path)
			So(processor.job.Tags["artist"], ShouldEqual, "jawed")
			So(processor.job.Tags["comment"], ShouldEqual, "https://youtu.be/jNQXAC9IVRw")

			So(reported, ShouldContain, int64(len(payload)))

			Convey("And remove the staged inputs afterwards", func() {
				for _, staged := range []string{processor.job.VideoPath, processor.job.AudioPath} {
					exists, err := filesystem.API().Exists(staged)
					So(err, ShouldBeNil)
					So(exists, ShouldBeFalse)
				}
			})
		})

		Convey("Audio-only downloads should land in an m4a container", func() {
			processor := &recordingProcessor{}

			path, err := Download(context.Background(), details, Options{
				Audio:     audio,
				Processor: processor,
			})

			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/downloads/Me_at_the_zoo.m4a")
			So(processor.job.VideoPath, ShouldBeEmpty)
		})

		Convey("Video-only downloads should leave the audio input empty", func() {
			processor := &recordingProcessor{}

			path, err := Download(context.Background(), details, Options{
				Video:     video,
				Processor: processor,
			})

			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/downloads/Me_at_the_zoo.mp4")
			So(processor.called, ShouldBeTrue)
			So(processor.job.VideoPath, ShouldNotBeEmpty)
			So(processor.job.AudioPath, ShouldBeEmpty)
		})

		Convey("Should refuse a selection with no streams", func() {
			_, err := Download(context.Background(), details, Options{})
			So(err, ShouldNotBeNil)
		})
	})
}
