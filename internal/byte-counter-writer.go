package internal

import "io"

// ByteCounterWriter passes writes through to Writer and counts the bytes that made it
type ByteCounterWriter struct {
	Writer io.Writer
	count  int64
}

func (bcw *ByteCounterWriter) Write(p []byte) (int, error) {
	n, err := bcw.Writer.Write(p)
	bcw.count += int64(n)

	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}

	return n, err
}

func (bcw *ByteCounterWriter) Count() int64 {
	return bcw.count
}
