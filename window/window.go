// Package window provides paged access to byte streams that may be too large
// to hold in memory.
//
// A Reader hands out Windows: bounded in-memory views of the stream that
// cover a requested logical position. Matchers walk from window to window
// without caring how the bytes were fetched.
package window

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow indicates a reader returned a window that does not
	// cover the requested position. Matching stops rather than spin.
	ErrInvalidWindow = errors.New("window does not cover requested position")

	// ErrInvalidWindowSize indicates a non-positive window size was requested.
	ErrInvalidWindowSize = errors.New("window size must be positive")
)

// Window is a contiguous view of a stream starting at a logical position.
// The bytes must not be modified by callers.
type Window struct {
	position int64
	bytes    []byte
}

// New creates a window over b starting at the given logical position.
func New(position int64, b []byte) *Window {
	return &Window{position: position, bytes: b}
}

// Position returns the logical position of the first byte in the window.
func (w *Window) Position() int64 {
	return w.position
}

// Bytes returns the window contents.
func (w *Window) Bytes() []byte {
	return w.bytes
}

// Len returns the number of bytes in the window.
func (w *Window) Len() int {
	return len(w.bytes)
}

// End returns the logical position just past the last byte in the window.
func (w *Window) End() int64 {
	return w.position + int64(len(w.bytes))
}

// String returns a human-readable representation of the window
func (w *Window) String() string {
	return fmt.Sprintf("Window{position: %d, len: %d}", w.position, len(w.bytes))
}

// Reader gives access to a stream through windows.
type Reader interface {
	// Window returns the window covering position.
	// It returns (nil, nil) if position is negative or past the end of the
	// available data; errors are reserved for I/O failures.
	Window(position int64) (*Window, error)

	// WindowOffset returns the offset of position within the window that
	// Window(position) returns.
	WindowOffset(position int64) int
}

// Sized is implemented by readers that know the length of their stream.
type Sized interface {
	Length() (int64, error)
}

// ReadByte returns the byte at position.
// ok is false if position is outside the stream.
func ReadByte(r Reader, position int64) (b byte, ok bool, err error) {
	w, err := r.Window(position)
	if err != nil || w == nil {
		return 0, false, err
	}
	offset := r.WindowOffset(position)
	if offset < 0 || offset >= w.Len() {
		return 0, false, ErrInvalidWindow
	}
	return w.bytes[offset], true, nil
}
