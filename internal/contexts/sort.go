package contexts

import (
	"cmp"
	"slices"
)

// Sort orders triples by their prefix read backwards from the match, so contexts that
// differ close to the match end up next to each other. Ties are ordered by offset.
func Sort(triples []Triple) {
	slices.SortStableFunc(triples, func(a Triple, b Triple) int {
		if result := compareReversed(a.Prefix, b.Prefix); result != 0 {
			return result
		}

		return cmp.Compare(a.Offset, b.Offset)
	})
}

func compareReversed(a []byte, b []byte) int {
	for i := 1; i <= len(a) && i <= len(b); i++ {
		if result := cmp.Compare(a[len(a)-i], b[len(b)-i]); result != 0 {
			return result
		}
	}

	return cmp.Compare(len(a), len(b))
}
