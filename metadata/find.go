package metadata

import (
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/shibi-dl/shibi/log"
)

// FindClosest returns the track record closest to the given video title.
// It levenshtein compares the title with every search result. Lookup
// failures degrade to None; downloads proceed untagged.
func FindClosest(title string) mo.Option[*Metadata] {
	results, err := Search(title)
	if err != nil {
		log.Warnf("metadata lookup for %q failed: %v", title, err)
		return mo.None[*Metadata]()
	}

	return closest(title, results)
}

func closest(title string, candidates []*Metadata) mo.Option[*Metadata] {
	if len(candidates) == 0 {
		return mo.None[*Metadata]()
	}

	target := normalized(title)
	best := lo.MinBy(candidates, func(a, b *Metadata) bool {
		return levenshtein.Distance(normalized(a.Title), target) <
			levenshtein.Distance(normalized(b.Title), target)
	})

	return mo.Some(best)
}
