package piped

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Rank returns the healthy instances ordered for selection: descending
// priority tier, ties broken by ascending measured latency. Instances
// that are offline or still probing are excluded. Pure function; the
// input slice is not modified.
func Rank(instances []*Instance) []*Instance {
	ranked := lo.Filter(instances, func(i *Instance, _ int) bool {
		return i.Online() && i.Initialized()
	})

	slices.SortStableFunc(ranked, func(a, b *Instance) int {
		if a.Priority() != b.Priority() {
			return b.Priority() - a.Priority()
		}
		return int(a.Ping() - b.Ping())
	})

	return ranked
}

// FastestCDN returns the highest-ranked instance known to serve stream
// bytes directly, or None when no healthy instance advertises CDN serving.
func FastestCDN(instances []*Instance) mo.Option[*Instance] {
	for _, i := range Rank(instances) {
		if i.CDN() {
			return mo.Some(i)
		}
	}
	return mo.None[*Instance]()
}
