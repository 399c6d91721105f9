// Package scan finds exact byte sequences in an in-memory buffer.
package scan

import "bytes"

// FindAll returns every offset where pattern occurs in data, in ascending order.
// Overlapping occurrences are included. An empty pattern never matches.
func FindAll(data []byte, pattern []byte) []int {
	if len(pattern) == 0 {
		return nil
	}

	var offsets []int

	for start := 0; start <= len(data)-len(pattern); {
		index := bytes.Index(data[start:], pattern)

		if index < 0 {
			break
		}

		offsets = append(offsets, start+index)

		// Resume one byte after the match so overlapping occurrences are found
		start += index + 1
	}

	return offsets
}

// Count returns the number of (possibly overlapping) occurrences of pattern in data
func Count(data []byte, pattern []byte) int {
	return len(FindAll(data, pattern))
}

// First returns the offset of the first occurrence of pattern in data, or -1
func First(data []byte, pattern []byte) int {
	if len(pattern) == 0 {
		return -1
	}

	return bytes.Index(data, pattern)
}
