//go:build !unix

package window

import (
	"os"
)

// MmapReader falls back to ReadAt-backed windows on platforms without mmap.
type MmapReader struct {
	*ReaderAtReader
	file *os.File
}

// OpenMmap opens the named file for windowed reading.
func OpenMmap(name string, windowSize int) (*MmapReader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	r, err := NewReaderAtReader(f, info.Size(), windowSize)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MmapReader{ReaderAtReader: r, file: f}, nil
}

// Close closes the underlying file.
func (r *MmapReader) Close() error {
	return r.file.Close()
}
