// Package patch applies a single same-length substitution to a buffer and writes the
// result next to the original name without overwriting anything.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/timmattison/safefr/internal"
	"github.com/timmattison/safefr/internal/scan"
	"github.com/zeebo/blake3"
)

var (
	ErrLengthMismatch = errors.New("search and replacement must have the same length")
	ErrNotFound       = errors.New("search sequence not found")
	ErrAmbiguous      = errors.New("search sequence occurs more than once")
)

// Apply returns a copy of data with the single occurrence of search replaced
func Apply(data []byte, search []byte, replacement []byte) ([]byte, error) {
	if len(search) != len(replacement) {
		return nil, fmt.Errorf("%w: %d and %d bytes", ErrLengthMismatch, len(search), len(replacement))
	}

	offsets := scan.FindAll(data, search)

	switch {
	case len(offsets) == 0:
		return nil, ErrNotFound
	case len(offsets) > 1:
		return nil, fmt.Errorf("%w: %d occurrences", ErrAmbiguous, len(offsets))
	}

	patched := bytes.Clone(data)
	copy(patched[offsets[0]:], replacement)

	return patched, nil
}

// Digest returns the hex encoded BLAKE3-256 digest of data
func Digest(data []byte) string {
	sum := blake3.Sum256(data)

	return fmt.Sprintf("%x", sum)
}

// OutputPath returns the first of <base>.mod, <base>.mod.1, <base>.mod.2, ... in dir
// that does not exist yet, where base is the file name of inputPath
func OutputPath(dir string, inputPath string) string {
	return candidate(dir, inputPath, firstFree(dir, inputPath, 0))
}

func candidate(dir string, inputPath string, n int) string {
	name := filepath.Base(inputPath) + ".mod"

	if n > 0 {
		name = fmt.Sprintf("%s.%d", name, n)
	}

	return filepath.Join(dir, name)
}

func firstFree(dir string, inputPath string, n int) int {
	for internal.FileExists(candidate(dir, inputPath, n)) {
		n++
	}

	return n
}

type Result struct {
	Path         string
	BytesWritten int64
	Digest       string
}

// Write stores data under OutputPath(dir, inputPath). The file is created exclusively, so
// a file that appears between choosing the name and creating it is never overwritten.
func Write(dir string, inputPath string, data []byte, perm os.FileMode) (Result, error) {
	for n := firstFree(dir, inputPath, 0); ; n = firstFree(dir, inputPath, n+1) {
		path := candidate(dir, inputPath, n)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)

		if errors.Is(err, os.ErrExist) {
			continue
		}

		if err != nil {
			return Result{}, err
		}

		written, err := save(path, file, data)

		if err != nil {
			return Result{}, err
		}

		return Result{Path: path, BytesWritten: written, Digest: Digest(data)}, nil
	}
}

// save writes data to the freshly created file at path and closes it. On failure the
// file is removed so no partial output is left behind.
func save(path string, file io.WriteCloser, data []byte) (int64, error) {
	counter := &internal.ByteCounterWriter{Writer: file}

	if _, err := counter.Write(data); err != nil {
		file.Close()
		os.Remove(path)

		return 0, fmt.Errorf("error writing %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(path)

		return 0, fmt.Errorf("error closing %s: %w", path, err)
	}

	return counter.Count(), nil
}
