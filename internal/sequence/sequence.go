// Package sequence parses and renders the prefix/find/replace/suffix hex grammar.
package sequence

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrFormat         = errors.New("sequence does not match the expected format")
	ErrLengthMismatch = errors.New("the length of the find and replace subsequences have to be equal")
)

// Each segment is a run of hex byte pairs, each optionally followed by whitespace.
// prefix and suffix may be empty, find and replace may not.
var grammar = regexp.MustCompile(`^(?P<prefix>(?:[0-9a-fA-F]{2}\s*)*)/(?P<find>(?:[0-9a-fA-F]{2}\s*)+)/(?P<replace>(?:[0-9a-fA-F]{2}\s*)+)/(?P<suffix>(?:[0-9a-fA-F]{2}\s*)*)$`)

var whitespace = regexp.MustCompile(`\s`)

// Spec is a decoded prefix/find/replace/suffix sequence
type Spec struct {
	Prefix  []byte
	Find    []byte
	Replace []byte
	Suffix  []byte
}

// Parse decodes a sequence of the form prefix/find/replace/suffix
func Parse(input string) (Spec, error) {
	match := grammar.FindStringSubmatch(input)

	if match == nil {
		return Spec{}, fmt.Errorf("%w: %q", ErrFormat, input)
	}

	var spec Spec
	var err error

	segments := []*[]byte{&spec.Prefix, &spec.Find, &spec.Replace, &spec.Suffix}

	for i, name := range []string{"prefix", "find", "replace", "suffix"} {
		if *segments[i], err = decodeSegment(match[grammar.SubexpIndex(name)]); err != nil {
			return Spec{}, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
		}
	}

	if err = spec.Validate(); err != nil {
		return Spec{}, err
	}

	return spec, nil
}

func decodeSegment(segment string) ([]byte, error) {
	compact := whitespace.ReplaceAllString(segment, "")

	if compact == "" {
		return []byte{}, nil
	}

	return hex.DecodeString(compact)
}

// Validate checks the invariants the rest of the tool relies on
func (s Spec) Validate() error {
	if len(s.Find) == 0 {
		return fmt.Errorf("%w: find must not be empty", ErrFormat)
	}

	if len(s.Find) != len(s.Replace) {
		return fmt.Errorf("%w: find is %d bytes, replace is %d bytes", ErrLengthMismatch, len(s.Find), len(s.Replace))
	}

	return nil
}

// Search is the fixed-length pattern that is looked for: prefix + find + suffix
func (s Spec) Search() []byte {
	return concat(s.Prefix, s.Find, s.Suffix)
}

// Replacement is what Search is replaced with: prefix + replace + suffix
func (s Spec) Replacement() []byte {
	return concat(s.Prefix, s.Replace, s.Suffix)
}

// String renders the spec in the same grammar Parse accepts, as lowercase hex
func (s Spec) String() string {
	return strings.Join([]string{
		hex.EncodeToString(s.Prefix),
		hex.EncodeToString(s.Find),
		hex.EncodeToString(s.Replace),
		hex.EncodeToString(s.Suffix),
	}, "/")
}

func concat(parts ...[]byte) []byte {
	size := 0

	for _, part := range parts {
		size += len(part)
	}

	result := make([]byte, 0, size)

	for _, part := range parts {
		result = append(result, part...)
	}

	return result
}
