package window

import (
	"errors"
	"io"
	"sync"
)

// ReaderAtReader serves fixed-size windows read from an io.ReaderAt.
//
// The most recently read window is kept; everything else is re-read on
// demand. A ReaderAtReader is safe for concurrent use.
type ReaderAtReader struct {
	src        io.ReaderAt
	size       int64
	windowSize int

	mu   sync.Mutex
	last *Window
}

// NewReaderAtReader creates a reader over the first size bytes of src.
func NewReaderAtReader(src io.ReaderAt, size int64, windowSize int) (*ReaderAtReader, error) {
	if windowSize <= 0 {
		return nil, ErrInvalidWindowSize
	}
	return &ReaderAtReader{src: src, size: size, windowSize: windowSize}, nil
}

// Window returns the window covering position.
func (r *ReaderAtReader) Window(position int64) (*Window, error) {
	if position < 0 || position >= r.size {
		return nil, nil
	}
	start := position - position%int64(r.windowSize)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last != nil && r.last.position == start {
		return r.last, nil
	}

	n := min(int64(r.windowSize), r.size-start)
	buf := make([]byte, n)
	read, err := r.src.ReadAt(buf, start)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if read == 0 {
		return nil, nil
	}
	r.last = New(start, buf[:read])
	return r.last, nil
}

// WindowOffset returns the offset of position within its window.
func (r *ReaderAtReader) WindowOffset(position int64) int {
	return int(position % int64(r.windowSize))
}

// Length returns the size given at construction.
func (r *ReaderAtReader) Length() (int64, error) {
	return r.size, nil
}
