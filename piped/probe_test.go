package piped

import (
	"context"
	"testing"
	"time"

	"github.com/shibi-dl/shibi/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestProbe(t *testing.T) {
	Convey("Instance probing", t, func() {
		viper.Set(key.MirrorsProbeVideo, "jNQXAC9IVRw")
		viper.Set(key.MirrorsProbeIndex, 5)
		viper.Set(key.NetworkTLSSpoof, false)

		ctx := context.Background()

		Convey("Should record latency and CDN capability on success", func() {
			m := newFakeMirror()
			defer m.close()
			m.response = streamsResponse{
				Title: "Me at the zoo",
				VideoStreams: []streamJSON{
					m.stream(18, "avc1", "360p", "video/mp4", 512),
					m.stream(22, "avc1", "720p", "video/mp4", 1024),
				},
			}

			i := New(m.url())
			i.Probe(ctx)

			So(i.Initialized(), ShouldBeTrue)
			So(i.Online(), ShouldBeTrue)
			So(i.CDN(), ShouldBeTrue)
			So(i.Ping(), ShouldBeGreaterThan, time.Duration(0))
		})

		Convey("Should clamp the probe index to the last available stream", func() {
			m := newFakeMirror()
			defer m.close()
			m.response = streamsResponse{
				VideoStreams: []streamJSON{
					m.stream(18, "avc1", "360p", "video/mp4", 512),
					m.stream(22, "avc1", "720p", "video/mp4", 1024),
				},
			}

			New(m.url()).Probe(ctx)

			So(m.lastHead.Load(), ShouldEqual, "/bytes/22")
		})

		Convey("Should detect proxying mirrors by the missing content-length", func() {
			m := newFakeMirror()
			defer m.close()
			m.bareHead = true
			m.response = streamsResponse{
				VideoStreams: []streamJSON{
					m.stream(22, "avc1", "720p", "video/mp4", 1024),
				},
			}

			i := New(m.url())
			i.Probe(ctx)

			So(i.Online(), ShouldBeTrue)
			So(i.CDN(), ShouldBeFalse)
		})

		Convey("Should mark the instance offline when metadata fails", func() {
			broken := brokenMirror()
			defer broken.Close()

			i := New(broken.URL)
			i.Probe(ctx)

			So(i.Initialized(), ShouldBeTrue)
			So(i.Online(), ShouldBeFalse)
		})

		Convey("Should mark the instance offline on a zero latency measurement", func() {
			m := newFakeMirror()
			defer m.close()
			m.headDelay = 0
			m.response = streamsResponse{
				VideoStreams: []streamJSON{
					m.stream(22, "avc1", "720p", "video/mp4", 1024),
				},
			}

			i := New(m.url())
			i.Probe(ctx)

			So(i.Initialized(), ShouldBeTrue)
			So(i.Online(), ShouldBeFalse)
		})

		Convey("Registry probes should settle every instance", func() {
			m := newFakeMirror()
			defer m.close()
			m.response = streamsResponse{
				VideoStreams: []streamJSON{
					m.stream(22, "avc1", "720p", "video/mp4", 1024),
				},
			}
			broken := brokenMirror()
			defer broken.Close()

			r := NewRegistry([]string{broken.URL}, m.url())
			r.StartProbes(ctx)
			r.Settled()

			for _, i := range r.Instances() {
				So(i.Initialized(), ShouldBeTrue)
			}
			So(r.Ranked(), ShouldResemble, []*Instance{r.Official()})
		})
	})
}
