package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedFile is a file mapped read-only into memory
type MappedFile struct {
	Data []byte
	Info os.FileInfo
	file *os.File
	mmap mmap.MMap
}

// MapFile maps the whole file at path read-only. Empty files cannot be mapped, they
// yield an empty Data slice instead.
func MapFile(path string) (*MappedFile, error) {
	file, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	info, err := file.Stat()

	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mapped := &MappedFile{Info: info, file: file}

	if info.Size() == 0 {
		mapped.Data = []byte{}
		return mapped, nil
	}

	if mapped.mmap, err = mmap.Map(file, mmap.RDONLY, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("error memory mapping file: %w", err)
	}

	mapped.Data = mapped.mmap

	return mapped, nil
}

// Close unmaps the file. Data must not be used afterwards.
func (m *MappedFile) Close() error {
	var unmapErr error

	if m.mmap != nil {
		unmapErr = m.mmap.Unmap()
		m.mmap = nil
	}

	m.Data = nil

	return errors.Join(unmapErr, m.file.Close())
}

// FileExists reports whether anything exists at path, including broken symlinks
func FileExists(path string) bool {
	_, err := os.Lstat(path)

	return !errors.Is(err, os.ErrNotExist)
}
