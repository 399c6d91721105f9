package contexts

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// matcher answers whether a context around one occurrence is unique. Any occurrence of a
// context contains the search window at the same relative position, so it is one of the
// offsets, and the offsets sharing each side of a context are exactly the group the pass
// for that side had at the same depth.
type matcher struct {
	data         []byte
	searchLength int
	left         *history
	right        *history
}

func newMatcher(data []byte, searchLength int, left *history, right *history) matcher {
	return matcher{data: data, searchLength: searchLength, left: left, right: right}
}

func (m matcher) unique(offset int, prefix int, suffix int) bool {
	if offset-prefix < 0 || offset+m.searchLength+suffix > len(m.data) {
		return false
	}

	before := m.left.members(offset, prefix)
	after := m.right.members(offset, suffix)

	if before == nil || after == nil {
		return true
	}

	// Walk the smaller side and look each candidate up in the other pass
	candidates, other, depth := before, m.right, suffix

	if len(after) < len(before) {
		candidates, other, depth = after, m.left, prefix
	}

	for _, candidate := range candidates {
		if candidate != offset && other.shares(offset, candidate, depth) {
			return false
		}
	}

	return true
}

// Uniqueness is monotonic in both lengths, so the shortest unique length can be
// found with a binary search
func (m matcher) shrinkPrefix(r Resolved) Resolved {
	r.Prefix = sort.Search(r.Prefix+1, func(prefix int) bool {
		return m.unique(r.Offset, prefix, r.Suffix)
	})

	return r
}

func (m matcher) shrinkSuffix(r Resolved) Resolved {
	r.Suffix = sort.Search(r.Suffix+1, func(suffix int) bool {
		return m.unique(r.Offset, r.Prefix, suffix)
	})

	return r
}

// tighten tries both shrink orders and keeps the shorter context. Ties keep the
// suffix-first result, which favours context before the match.
func (m matcher) tighten(r Resolved) Resolved {
	suffixFirst := m.shrinkPrefix(m.shrinkSuffix(r))
	prefixFirst := m.shrinkSuffix(m.shrinkPrefix(r))

	if prefixFirst.Prefix+prefixFirst.Suffix < suffixFirst.Prefix+suffixFirst.Suffix {
		return prefixFirst
	}

	return suffixFirst
}

// refine verifies that every resolved context is unique and optionally tightens it.
// Occurrences are independent, so they are processed on a bounded pool of goroutines.
func refine(m matcher, resolved []Resolved, tighten bool, workers int) ([]Resolved, error) {
	refined := make([]Resolved, len(resolved))

	var group errgroup.Group
	group.SetLimit(workers)

	for i, r := range resolved {
		group.Go(func() error {
			if !m.unique(r.Offset, r.Prefix, r.Suffix) {
				return fmt.Errorf("%w: context of %d+%d bytes around offset %d occurs more than once", ErrIndistinguishable, r.Prefix, r.Suffix, r.Offset)
			}

			if tighten {
				r = m.tighten(r)
			}

			refined[i] = r

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return refined, nil
}
