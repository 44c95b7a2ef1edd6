//go:build unix

package window

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapReader serves windows over a memory-mapped file.
// Windows are slices of the mapping, so no bytes are copied.
type MmapReader struct {
	ByteReader
	mapped []byte
}

// OpenMmap maps the named file read-only.
// Empty files are not mapped; they yield a reader with no windows.
func OpenMmap(name string, windowSize int) (*MmapReader, error) {
	if windowSize <= 0 {
		return nil, ErrInvalidWindowSize
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	r := &MmapReader{ByteReader: ByteReader{windowSize: windowSize}}
	if size == 0 {
		return r, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("mmap %s: file too large (%d bytes)", name, size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", name, err)
	}
	r.mapped = data
	r.data = data
	return r, nil
}

// Close unmaps the file. Windows obtained earlier must not be used afterwards.
func (r *MmapReader) Close() error {
	if r.mapped == nil {
		return nil
	}
	data := r.mapped
	r.mapped, r.data = nil, nil
	return unix.Munmap(data)
}
