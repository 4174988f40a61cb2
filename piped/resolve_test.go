package piped

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shibi-dl/shibi/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestStreams(t *testing.T) {
	Convey("Stream resolution", t, func() {
		viper.Set(key.FiltersAudioContainers, []string{"webm"})
		viper.Set(key.FiltersVideoContainers, []string{"3gpp"})
		viper.Set(key.FiltersItags, []int{})
		viper.Set(key.NetworkTLSSpoof, false)

		ctx := context.Background()

		metadata := newFakeMirror()
		defer metadata.close()
		metadata.response = streamsResponse{
			Title:       "Me at the zoo",
			Category:    "People & Blogs",
			Description: "The first video on YouTube.",
			Uploader:    "jawed",
			VideoStreams: []streamJSON{
				metadata.stream(22, "avc1", "720p", "video/mp4", 0),
				metadata.stream(17, "mp4v", "144p", "video/3gpp", 0),
			},
			AudioStreams: []streamJSON{
				metadata.stream(140, "mp4a.40.2", "128 kbps", "audio/mp4", 0),
				metadata.stream(251, "opus", "128 kbps", "audio/webm", 0),
			},
		}

		bytes := newFakeMirror()
		defer bytes.close()
		bytes.response = streamsResponse{
			Title: "Me at the zoo",
			VideoStreams: []streamJSON{
				bytes.stream(22, "avc1", "720p", "video/mp4", 2000),
			},
			AudioStreams: []streamJSON{
				bytes.stream(140, "mp4a.40.2", "128 kbps", "audio/mp4", 1000),
			},
		}

		primary := stub(metadata.url(), true, true, false, 50*time.Millisecond, 1)
		cdn := stub(bytes.url(), true, true, true, 30*time.Millisecond, 0)
		down := stub("http://127.0.0.1:1", false, true, true, 5*time.Millisecond, 0)

		registry := &Registry{instances: []*Instance{primary, cdn, down}, official: primary}

		Convey("Should assemble metadata with authoritative CDN sizes", func() {
			details, err := primary.Streams(ctx, "jNQXAC9IVRw", registry)

			So(err, ShouldBeNil)
			So(details.VideoID, ShouldEqual, "jNQXAC9IVRw")
			So(details.Title, ShouldEqual, "Me at the zoo")
			So(details.Uploader, ShouldEqual, "jawed")

			So(details.VideoStreams, ShouldHaveLength, 1)
			So(details.VideoStreams[0].Quality, ShouldEqual, "720p")
			So(details.VideoStreams[0].Size, ShouldEqual, 2000)
			So(details.VideoStreams[0].URL, ShouldEqual, bytes.url()+"/bytes/22")

			So(details.AudioStreams, ShouldHaveLength, 1)
			So(details.AudioStreams[0].Size, ShouldEqual, 1000)
			So(details.AudioStreams[0].URL, ShouldEqual, bytes.url()+"/bytes/140")
		})

		Convey("Should resolve identically on repeated calls", func() {
			first, err := primary.Streams(ctx, "jNQXAC9IVRw", registry)
			So(err, ShouldBeNil)

			second, err := primary.Streams(ctx, "jNQXAC9IVRw", registry)
			So(err, ShouldBeNil)

			So(second, ShouldResemble, first)
			So(primary.Online(), ShouldBeTrue)
			So(cdn.Online(), ShouldBeTrue)
		})

		Convey("Should refuse an offline receiver without any network traffic", func() {
			offline := stub(metadata.url(), false, true, false, 0, 1)
			before := metadata.requests.Load()

			_, err := offline.Streams(ctx, "jNQXAC9IVRw", registry)

			So(errors.Is(err, ErrOffline), ShouldBeTrue)
			So(metadata.requests.Load(), ShouldEqual, before)
		})

		Convey("Should fail without a healthy CDN mirror in the fleet", func() {
			lone := &Registry{instances: []*Instance{primary, down}, official: primary}

			_, err := primary.Streams(ctx, "jNQXAC9IVRw", lone)

			So(errors.Is(err, ErrCDNOffline), ShouldBeTrue)
			So(primary.Online(), ShouldBeTrue)
		})

		Convey("Should mark the receiver offline when its metadata fails", func() {
			broken := brokenMirror()
			defer broken.Close()
			failing := stub(broken.URL, true, true, false, 50*time.Millisecond, 1)
			fleet := &Registry{instances: []*Instance{failing, cdn}, official: failing}

			_, err := failing.Streams(ctx, "jNQXAC9IVRw", fleet)

			So(errors.Is(err, ErrOffline), ShouldBeTrue)
			So(failing.Online(), ShouldBeFalse)
			So(cdn.Online(), ShouldBeTrue)
		})

		Convey("Should mark the CDN mirror offline when its metadata fails", func() {
			broken := brokenMirror()
			defer broken.Close()
			failingCDN := stub(broken.URL, true, true, true, 10*time.Millisecond, 0)
			fleet := &Registry{instances: []*Instance{primary, failingCDN}, official: primary}

			_, err := primary.Streams(ctx, "jNQXAC9IVRw", fleet)

			So(errors.Is(err, ErrCDNOffline), ShouldBeTrue)
			So(failingCDN.Online(), ShouldBeFalse)
			So(primary.Online(), ShouldBeTrue)
		})

		Convey("Should mark the CDN mirror offline when a stream has no counterpart", func() {
			sparse := newFakeMirror()
			defer sparse.close()
			sparse.response = streamsResponse{
				VideoStreams: []streamJSON{
					sparse.stream(22, "avc1", "720p", "video/mp4", 2000),
				},
			}
			sparseCDN := stub(sparse.url(), true, true, true, 10*time.Millisecond, 0)
			fleet := &Registry{instances: []*Instance{primary, sparseCDN}, official: primary}

			_, err := primary.Streams(ctx, "jNQXAC9IVRw", fleet)

			So(errors.Is(err, ErrCDNOffline), ShouldBeTrue)
			So(sparseCDN.Online(), ShouldBeFalse)
		})

		Convey("Should mark the CDN mirror offline when a size probe fails", func() {
			proxied := newFakeMirror()
			defer proxied.close()
			proxied.bareHead = true
			proxied.response = streamsResponse{
				VideoStreams: []streamJSON{
					proxied.stream(22, "avc1", "720p", "video/mp4", 2000),
				},
				AudioStreams: []streamJSON{
					proxied.stream(140, "mp4a.40.2", "128 kbps", "audio/mp4", 1000),
				},
			}
			proxyCDN := stub(proxied.url(), true, true, true, 10*time.Millisecond, 0)
			fleet := &Registry{instances: []*Instance{primary, proxyCDN}, official: primary}

			_, err := primary.Streams(ctx, "jNQXAC9IVRw", fleet)

			So(errors.Is(err, ErrCDNOffline), ShouldBeTrue)
			So(proxyCDN.Online(), ShouldBeFalse)
		})
	})
}
