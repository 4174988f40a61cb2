package piped

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func stub(host string, online, initialized, cdn bool, ping time.Duration, priority int) *Instance {
	i := New(host)
	i.online = online
	i.initialized = initialized
	i.cdn = cdn
	i.ping = ping
	i.priority = priority
	return i
}

func TestRank(t *testing.T) {
	Convey("Fleet ranking", t, func() {
		official := stub("https://a.example", true, true, false, 50*time.Millisecond, 1)
		fast := stub("https://b.example", true, true, true, 30*time.Millisecond, 0)
		slow := stub("https://c.example", true, true, true, 90*time.Millisecond, 0)
		down := stub("https://d.example", false, true, true, 5*time.Millisecond, 0)
		probing := stub("https://e.example", true, false, true, time.Millisecond, 0)

		fleet := []*Instance{slow, probing, fast, down, official}

		Convey("Should order by priority tier, ties broken by latency", func() {
			So(Rank(fleet), ShouldResemble, []*Instance{official, fast, slow})
		})

		Convey("Should exclude offline and still-probing instances", func() {
			for _, i := range Rank(fleet) {
				So(i.Online(), ShouldBeTrue)
				So(i.Initialized(), ShouldBeTrue)
			}
		})

		Convey("Should leave the input slice untouched", func() {
			_ = Rank(fleet)
			So(fleet[0], ShouldEqual, slow)
		})

		Convey("FastestCDN should skip higher-ranked non-CDN instances", func() {
			choice, ok := FastestCDN(fleet).Get()
			So(ok, ShouldBeTrue)
			So(choice, ShouldEqual, fast)
		})

		Convey("FastestCDN should be None without a healthy CDN mirror", func() {
			So(FastestCDN([]*Instance{official, down, probing}).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Registry construction", t, func() {
		r := NewRegistry(
			[]string{"https://b.example", "https://b.example", "https://c.example"},
			"https://a.example",
		)

		Convey("Should place the official mirror in the fleet with elevated priority", func() {
			So(r.Official().Priority(), ShouldEqual, 1)
			So(r.Instances(), ShouldContain, r.Official())
		})

		Convey("Should deduplicate mirror addresses", func() {
			So(len(r.Instances()), ShouldEqual, 3)
		})

		Convey("Should start every instance online but uninitialized", func() {
			for _, i := range r.Instances() {
				So(i.Online(), ShouldBeTrue)
				So(i.Initialized(), ShouldBeFalse)
			}
		})

		Convey("Ranked should be empty before any probe completes", func() {
			So(r.Ranked(), ShouldBeEmpty)
		})
	})
}
