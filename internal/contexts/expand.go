package contexts

import (
	"fmt"
	"slices"
)

// direction describes which way a pass grows context
type direction struct {
	name string
	// at returns the byte radius positions outside the search window of the occurrence
	// starting at offset, or false when that position is outside the buffer
	at func(offset int, radius int) (byte, bool)
	// edge returns the index of the group member closest to the buffer edge
	edge func(group []int) int
}

type resolution struct {
	offset int
	length int
}

func prefixDirection(data []byte) direction {
	return direction{
		name: "prefix",
		at: func(offset int, radius int) (byte, bool) {
			position := offset - radius

			if position < 0 {
				return 0, false
			}

			return data[position], true
		},
		edge: func(group []int) int {
			return 0
		},
	}
}

func suffixDirection(data []byte, searchLength int) direction {
	return direction{
		name: "suffix",
		at: func(offset int, radius int) (byte, bool) {
			position := offset + searchLength + radius - 1

			if position >= len(data) {
				return 0, false
			}

			return data[position], true
		},
		edge: func(group []int) int {
			return len(group) - 1
		},
	}
}

// history remembers which group every offset belonged to at each radius of a pass.
// Members of the group at depth k agree on k bytes of context, and every offset that
// agrees with a member on k bytes is in that group.
type history struct {
	index  map[int]int
	paths  [][]int
	groups [][]int
}

func newHistory(offsets []int) *history {
	h := &history{
		index: make(map[int]int, len(offsets)),
		paths: make([][]int, len(offsets)),
	}

	for i, offset := range offsets {
		h.index[offset] = i
	}

	return h
}

// record stores the groups entering the round at radius depth+1. Groups are never
// modified after a round has produced them, so they are kept by reference.
func (h *history) record(groups [][]int, depth int) error {
	for _, group := range groups {
		id := len(h.groups)
		h.groups = append(h.groups, group)

		for _, offset := range group {
			i, known := h.index[offset]

			if !known || len(h.paths[i]) != depth {
				return fmt.Errorf("%w: offset %d skipped a round before depth %d", ErrInconsistent, offset, depth)
			}

			h.paths[i] = append(h.paths[i], id)
		}
	}

	return nil
}

// members returns the offsets sharing depth bytes of context with offset, or nil when
// the offset was already alone at that depth
func (h *history) members(offset int, depth int) []int {
	path := h.paths[h.index[offset]]

	if depth >= len(path) {
		return nil
	}

	return h.groups[path[depth]]
}

// shares reports whether two offsets agree on depth bytes of context
func (h *history) shares(offset int, other int, depth int) bool {
	path := h.paths[h.index[offset]]
	otherPath := h.paths[h.index[other]]

	return depth < len(path) && depth < len(otherPath) && path[depth] == otherPath[depth]
}

// expand runs rounds until every offset has been resolved and returns the context length
// for each offset together with the group history of the pass
func expand(d direction, offsets []int) (map[int]int, *history, error) {
	lengths := make(map[int]int, len(offsets))
	groups := [][]int{slices.Clone(offsets)}
	past := newHistory(offsets)

	for radius := 1; len(groups) > 0; radius++ {
		if err := past.record(groups, radius-1); err != nil {
			return nil, nil, err
		}

		next, resolved, err := d.round(groups, radius)

		if err != nil {
			return nil, nil, err
		}

		for _, r := range resolved {
			if _, exists := lengths[r.offset]; exists {
				return nil, nil, fmt.Errorf("%w: %s pass resolved offset %d twice", ErrInconsistent, d.name, r.offset)
			}

			lengths[r.offset] = r.length
		}

		groups = next
	}

	if len(lengths) != len(offsets) {
		return nil, nil, fmt.Errorf("%w: %s pass resolved %d of %d offsets", ErrInconsistent, d.name, len(lengths), len(offsets))
	}

	return lengths, past, nil
}

// round looks at the byte at radius for every member of every group. It returns the
// groups that are still ambiguous and the offsets that became unique. The input groups
// are not modified.
func (d direction) round(groups [][]int, radius int) ([][]int, []resolution, error) {
	var next [][]int
	var resolved []resolution

	for _, group := range groups {
		if !slices.IsSorted(group) {
			return nil, nil, fmt.Errorf("%w: %s group %v is not sorted", ErrInconsistent, d.name, group)
		}

		edge := d.edge(group)

		if _, ok := d.at(group[edge], radius); !ok {
			// Members only survive a round when they had a byte at the previous radius
			if _, ok = d.at(group[edge], radius-1); radius > 1 && !ok {
				return nil, nil, fmt.Errorf("%w: %s offset %d passed the buffer edge", ErrInconsistent, d.name, group[edge])
			}

			// Reaching the edge makes this occurrence unique, nothing else in the group can
			// match the context all the way to the edge
			resolved = append(resolved, resolution{offset: group[edge], length: radius - 1})
			group = slices.Delete(slices.Clone(group), edge, edge+1)

			if len(group) == 0 {
				continue
			}

			if _, ok = d.at(group[d.edge(group)], radius); !ok {
				return nil, nil, fmt.Errorf("%w: %s offsets %d and %d reached the edge together", ErrInconsistent, d.name, resolved[len(resolved)-1].offset, group[d.edge(group)])
			}
		}

		for _, bucket := range d.partition(group, radius) {
			if len(bucket) == 1 {
				resolved = append(resolved, resolution{offset: bucket[0], length: radius})
			} else {
				next = append(next, bucket)
			}
		}
	}

	return next, resolved, nil
}

// partition splits a group by the byte at radius, keeping members in ascending order
// within each bucket
func (d direction) partition(group []int, radius int) [][]int {
	var order []byte

	buckets := make(map[byte][]int)

	for _, offset := range group {
		value, _ := d.at(offset, radius)

		if _, exists := buckets[value]; !exists {
			order = append(order, value)
		}

		buckets[value] = append(buckets[value], offset)
	}

	result := make([][]int, 0, len(order))

	for _, value := range order {
		result = append(result, buckets[value])
	}

	return result
}
