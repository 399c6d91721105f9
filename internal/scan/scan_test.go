package scan

import (
	"slices"
	"testing"
)

func TestFindAll(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		pattern  []byte
		expected []int
	}{
		{"not found", []byte{0x00, 0x01, 0x02}, []byte{0xee}, nil},
		{"single", []byte{0x10, 0x20, 0x30}, []byte{0x20}, []int{1}},
		{"two", []byte{0x00, 0xaa, 0x01, 0xaa, 0x02}, []byte{0xaa}, []int{1, 3}},
		{"overlapping", []byte{0xaa, 0xaa, 0xaa, 0xaa}, []byte{0xaa, 0xaa}, []int{0, 1, 2}},
		{"at both edges", []byte{0x01, 0x02, 0x00, 0x01, 0x02}, []byte{0x01, 0x02}, []int{0, 3}},
		{"pattern longer than data", []byte{0x01}, []byte{0x01, 0x02}, nil},
		{"empty data", nil, []byte{0x01}, nil},
		{"empty pattern", []byte{0x01, 0x02}, nil, nil},
		{"whole buffer", []byte{0x01, 0x02}, []byte{0x01, 0x02}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindAll(tt.data, tt.pattern)

			if !slices.Equal(result, tt.expected) {
				t.Errorf("FindAll(%x, %x) = %v, want %v", tt.data, tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestCount(t *testing.T) {
	data := []byte("abababa")

	tests := []struct {
		pattern  string
		expected int
	}{
		{"aba", 3},
		{"c", 0},
		{"abababa", 1},
	}

	for _, tt := range tests {
		if result := Count(data, []byte(tt.pattern)); result != tt.expected {
			t.Errorf("Count(%q) = %d, want %d", tt.pattern, result, tt.expected)
		}
	}
}

func TestFirst(t *testing.T) {
	data := []byte{0x00, 0xf9, 0xbe, 0xb4, 0xd9, 0xf9, 0xbe}

	tests := []struct {
		pattern  []byte
		expected int
	}{
		{[]byte{0xf9, 0xbe}, 1},
		{[]byte{0xee}, -1},
		{nil, -1},
	}

	for _, tt := range tests {
		if result := First(data, tt.pattern); result != tt.expected {
			t.Errorf("First(%x) = %d, want %d", tt.pattern, result, tt.expected)
		}
	}
}
