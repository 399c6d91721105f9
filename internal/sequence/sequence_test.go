package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Spec
	}{
		{
			input:    "/20/99/",
			expected: Spec{Prefix: []byte{}, Find: []byte{0x20}, Replace: []byte{0x99}, Suffix: []byte{}},
		},
		{
			input:    "00ff/aa/bb/01",
			expected: Spec{Prefix: []byte{0x00, 0xff}, Find: []byte{0xaa}, Replace: []byte{0xbb}, Suffix: []byte{0x01}},
		},
		{
			input:    "DE AD /BE EF/CA FE /12\t34",
			expected: Spec{Prefix: []byte{0xde, 0xad}, Find: []byte{0xbe, 0xef}, Replace: []byte{0xca, 0xfe}, Suffix: []byte{0x12, 0x34}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected error
	}{
		{"", ErrFormat},
		{"aa", ErrFormat},
		{"/aa/bb", ErrFormat},
		{"//bb/", ErrFormat},
		{"/aa//", ErrFormat},
		{"/a/b/", ErrFormat},
		{"/zz/bb/", ErrFormat},
		{" /aa/bb/", ErrFormat},
		{"0x00/aa/bb/", ErrFormat},
		{"/aa/bbcc/", ErrLengthMismatch},
		{"/aabb/cc/", ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestSearchAndReplacement(t *testing.T) {
	spec := Spec{
		Prefix:  []byte{0x01},
		Find:    []byte{0x02, 0x03},
		Replace: []byte{0x04, 0x05},
		Suffix:  []byte{0x06},
	}

	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x06}, spec.Search())
	assert.Equal(t, []byte{0x01, 0x04, 0x05, 0x06}, spec.Replacement())
}

func TestStringRoundTrip(t *testing.T) {
	input := "00ff/aa bb/cc dd/"

	spec, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, "00ff/aabb/ccdd/", spec.String())

	again, err := Parse(spec.String())
	require.NoError(t, err)
	assert.Equal(t, spec, again)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Spec{}.Validate(), ErrFormat)
	assert.ErrorIs(t, Spec{Find: []byte{0x01}}.Validate(), ErrLengthMismatch)
	assert.NoError(t, Spec{Find: []byte{0x01}, Replace: []byte{0x02}}.Validate())
}
