package window

// DefaultWindowSize is the window size used when none is given.
const DefaultWindowSize = 4096

// ByteReader serves windows over an in-memory byte slice.
// Windows share the slice; no bytes are copied.
type ByteReader struct {
	data       []byte
	windowSize int
}

// NewByteReader creates a reader over data with the given window size.
func NewByteReader(data []byte, windowSize int) (*ByteReader, error) {
	if windowSize <= 0 {
		return nil, ErrInvalidWindowSize
	}
	return &ByteReader{data: data, windowSize: windowSize}, nil
}

// Window returns the window covering position.
func (r *ByteReader) Window(position int64) (*Window, error) {
	if position < 0 || position >= int64(len(r.data)) {
		return nil, nil
	}
	start := position - position%int64(r.windowSize)
	end := min(start+int64(r.windowSize), int64(len(r.data)))
	return New(start, r.data[start:end]), nil
}

// WindowOffset returns the offset of position within its window.
func (r *ByteReader) WindowOffset(position int64) int {
	return int(position % int64(r.windowSize))
}

// Length returns the number of bytes available.
func (r *ByteReader) Length() (int64, error) {
	return int64(len(r.data)), nil
}
