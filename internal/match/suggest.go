package match

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// MinSuggestScore is the similarity below which a candidate is not offered.
const MinSuggestScore = 0.5

// Suggest returns up to limit candidates closest to name, best first. Ties
// keep the order of candidates.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	ranked := lo.FilterMap(candidates, func(c string, _ int) (scored, bool) {
		s := NormalizedScore(name, c)
		return scored{name: c, score: s}, s >= MinSuggestScore
	})

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	return lo.Map(lo.Slice(ranked, 0, max(limit, 0)), func(s scored, _ int) string { return s.name })
}
