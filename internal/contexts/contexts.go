// Package contexts computes, for every occurrence of a repeated byte sequence, the
// shortest surrounding bytes that make that occurrence unique in the buffer.
//
// The search runs two independent passes, one growing context toward the start of the
// buffer and one toward the end. Each pass starts with all occurrences in one group and,
// one byte of radius at a time, splits groups by the byte found at that radius. An
// occurrence is resolved when it is alone in its group or when it runs into the edge of
// the buffer. The resulting prefix/suffix lengths are then tightened so that neither side
// can lose a byte without the context becoming ambiguous again.
package contexts

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/timmattison/safefr/internal/scan"
	"github.com/timmattison/safefr/internal/sequence"
)

var (
	ErrInvalidOffsets = errors.New("offsets must be all occurrences of the search sequence, ascending, at least two")
	// ErrInconsistent means an internal invariant did not hold. Results must not be used.
	ErrInconsistent = errors.New("internal consistency check failed")
	// ErrIndistinguishable means two occurrences could not be told apart by their context
	ErrIndistinguishable = fmt.Errorf("%w: occurrences cannot be told apart by their context", ErrInconsistent)
)

// Resolved holds the number of context bytes needed before and after the search window
// of the occurrence at Offset
type Resolved struct {
	Offset int
	Prefix int
	Suffix int
}

// Triple is the reported context for one occurrence. Prefix includes the fixed prefix of
// the sequence and Suffix includes its fixed suffix.
type Triple struct {
	Offset int
	Prefix []byte
	Find   []byte
	Suffix []byte
}

// Context returns the complete byte string that identifies this occurrence
func (t Triple) Context() []byte {
	context := make([]byte, 0, len(t.Prefix)+len(t.Find)+len(t.Suffix))
	context = append(context, t.Prefix...)
	context = append(context, t.Find...)

	return append(context, t.Suffix...)
}

// Spec returns the refined sequence that targets only this occurrence
func (t Triple) Spec(replace []byte) sequence.Spec {
	return sequence.Spec{
		Prefix:  t.Prefix,
		Find:    t.Find,
		Replace: replace,
		Suffix:  t.Suffix,
	}
}

func (t Triple) key() string {
	return fmt.Sprintf("%x/%x/%x", t.Prefix, t.Find, t.Suffix)
}

type Options struct {
	// Tighten shrinks each context until neither side can lose a byte
	Tighten bool
	// Workers limits how many occurrences are verified and tightened at once.
	// Zero or less means runtime.GOMAXPROCS(0).
	Workers int
}

func DefaultOptions() Options {
	return Options{Tighten: true}
}

// Find returns one unique context triple per offset, in the same order as offsets
func Find(data []byte, offsets []int, spec sequence.Spec) ([]Triple, error) {
	return FindWithOptions(data, offsets, spec, DefaultOptions())
}

// FindWithOptions is Find with explicit options
func FindWithOptions(data []byte, offsets []int, spec sequence.Spec, options Options) ([]Triple, error) {
	resolved, err := resolve(data, offsets, spec.Search(), options)

	if err != nil {
		return nil, err
	}

	return assemble(data, spec, resolved)
}

func resolve(data []byte, offsets []int, search []byte, options Options) ([]Resolved, error) {
	if err := checkOffsets(data, offsets, search); err != nil {
		return nil, err
	}

	prefixLengths, left, err := expand(prefixDirection(data), offsets)

	if err != nil {
		return nil, err
	}

	suffixLengths, right, err := expand(suffixDirection(data, len(search)), offsets)

	if err != nil {
		return nil, err
	}

	resolved := make([]Resolved, len(offsets))

	for i, offset := range offsets {
		prefixLength, prefixOk := prefixLengths[offset]
		suffixLength, suffixOk := suffixLengths[offset]

		if !prefixOk || !suffixOk {
			return nil, fmt.Errorf("%w: offset %d was not resolved by both passes", ErrInconsistent, offset)
		}

		resolved[i] = Resolved{Offset: offset, Prefix: prefixLength, Suffix: suffixLength}
	}

	workers := options.Workers

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return refine(newMatcher(data, len(search), left, right), resolved, options.Tighten, workers)
}

func checkOffsets(data []byte, offsets []int, search []byte) error {
	if len(offsets) < 2 {
		return fmt.Errorf("%w: got %d offsets", ErrInvalidOffsets, len(offsets))
	}

	if len(search) == 0 {
		return fmt.Errorf("%w: empty search sequence", ErrInvalidOffsets)
	}

	for i, offset := range offsets {
		if i > 0 && offset <= offsets[i-1] {
			return fmt.Errorf("%w: offset %d follows %d", ErrInvalidOffsets, offset, offsets[i-1])
		}

		if offset < 0 || offset+len(search) > len(data) || !bytes.Equal(data[offset:offset+len(search)], search) {
			return fmt.Errorf("%w: no occurrence at offset %d", ErrInvalidOffsets, offset)
		}
	}

	// Uniqueness is only checked against these offsets, so they must be all of them
	if all := scan.FindAll(data, search); !slices.Equal(all, offsets) {
		return fmt.Errorf("%w: %d of %d occurrences given", ErrInvalidOffsets, len(offsets), len(all))
	}

	return nil
}

func assemble(data []byte, spec sequence.Spec, resolved []Resolved) ([]Triple, error) {
	searchLength := len(spec.Prefix) + len(spec.Find) + len(spec.Suffix)
	findStart := len(spec.Prefix)
	findEnd := findStart + len(spec.Find)

	triples := make([]Triple, 0, len(resolved))
	seen := make(map[string]int, len(resolved))

	for _, r := range resolved {
		triple := Triple{
			Offset: r.Offset,
			Prefix: bytes.Clone(data[r.Offset-r.Prefix : r.Offset+findStart]),
			Find:   bytes.Clone(spec.Find),
			Suffix: bytes.Clone(data[r.Offset+findEnd : r.Offset+searchLength+r.Suffix]),
		}

		key := triple.key()

		if previous, duplicate := seen[key]; duplicate {
			return nil, fmt.Errorf("%w: offsets %d and %d produce the same context %s", ErrIndistinguishable, previous, r.Offset, key)
		}

		seen[key] = r.Offset
		triples = append(triples, triple)
	}

	return triples, nil
}
