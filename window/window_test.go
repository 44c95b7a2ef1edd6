package window

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestByteReader_Windows(t *testing.T) {
	data := []byte("0123456789")
	r, err := NewByteReader(data, 4)
	if err != nil {
		t.Fatalf("NewByteReader error: %v", err)
	}

	tests := []struct {
		pos        int64
		wantStart  int64
		wantBytes  string
		wantOffset int
	}{
		{0, 0, "0123", 0},
		{3, 0, "0123", 3},
		{4, 4, "4567", 0},
		{9, 8, "89", 1},
	}
	for _, tt := range tests {
		w, err := r.Window(tt.pos)
		if err != nil {
			t.Fatalf("Window(%d) error: %v", tt.pos, err)
		}
		if w == nil {
			t.Fatalf("Window(%d) = nil", tt.pos)
		}
		if w.Position() != tt.wantStart {
			t.Errorf("Window(%d).Position() = %d, want %d", tt.pos, w.Position(), tt.wantStart)
		}
		if string(w.Bytes()) != tt.wantBytes {
			t.Errorf("Window(%d).Bytes() = %q, want %q", tt.pos, w.Bytes(), tt.wantBytes)
		}
		if off := r.WindowOffset(tt.pos); off != tt.wantOffset {
			t.Errorf("WindowOffset(%d) = %d, want %d", tt.pos, off, tt.wantOffset)
		}
		if w.End() != w.Position()+int64(w.Len()) {
			t.Errorf("End() inconsistent with Position()+Len()")
		}
	}

	for _, pos := range []int64{-1, 10, 100} {
		w, err := r.Window(pos)
		if err != nil || w != nil {
			t.Errorf("Window(%d) = (%v, %v), want (nil, nil)", pos, w, err)
		}
	}
}

func TestByteReader_InvalidSize(t *testing.T) {
	if _, err := NewByteReader(nil, 0); !errors.Is(err, ErrInvalidWindowSize) {
		t.Errorf("expected ErrInvalidWindowSize, got %v", err)
	}
}

func TestReadByte(t *testing.T) {
	r, _ := NewByteReader([]byte("abc"), 2)
	b, ok, err := ReadByte(r, 2)
	if err != nil || !ok || b != 'c' {
		t.Errorf("ReadByte(2) = (%q, %v, %v)", b, ok, err)
	}
	_, ok, err = ReadByte(r, 3)
	if err != nil || ok {
		t.Errorf("ReadByte(3) = (_, %v, %v), want not ok", ok, err)
	}
}

func TestReaderAtReader(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 10)
	r, err := NewReaderAtReader(bytes.NewReader(data), int64(len(data)), 16)
	if err != nil {
		t.Fatalf("NewReaderAtReader error: %v", err)
	}
	for pos := int64(0); pos < int64(len(data)); pos++ {
		b, ok, err := ReadByte(r, pos)
		if err != nil || !ok {
			t.Fatalf("ReadByte(%d) = (_, %v, %v)", pos, ok, err)
		}
		if b != data[pos] {
			t.Fatalf("ReadByte(%d) = %q, want %q", pos, b, data[pos])
		}
	}
	if w, _ := r.Window(int64(len(data))); w != nil {
		t.Error("window past end should be nil")
	}
	if n, _ := r.Length(); n != int64(len(data)) {
		t.Errorf("Length() = %d, want %d", n, len(data))
	}
}

func TestReaderAtReader_CachesLastWindow(t *testing.T) {
	data := []byte("0123456789")
	r, _ := NewReaderAtReader(bytes.NewReader(data), int64(len(data)), 4)
	w1, _ := r.Window(1)
	w2, _ := r.Window(2)
	if w1 != w2 {
		t.Error("consecutive reads in the same window should reuse it")
	}
}

func TestOpenMmap(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "data.bin")
	data := []byte("the quick brown fox jumps over the lazy dog")
	if err := os.WriteFile(name, data, 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := OpenMmap(name, 8)
	if err != nil {
		t.Fatalf("OpenMmap error: %v", err)
	}
	defer r.Close()

	var got []byte
	for pos := int64(0); ; {
		w, err := r.Window(pos)
		if err != nil {
			t.Fatalf("Window(%d) error: %v", pos, err)
		}
		if w == nil {
			break
		}
		got = append(got, w.Bytes()[r.WindowOffset(pos):]...)
		pos = w.End()
	}
	if !bytes.Equal(got, data) {
		t.Errorf("mmap contents = %q, want %q", got, data)
	}
}

func TestOpenMmap_Empty(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(name, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := OpenMmap(name, 8)
	if err != nil {
		t.Fatalf("OpenMmap error: %v", err)
	}
	defer r.Close()
	if w, err := r.Window(0); w != nil || err != nil {
		t.Errorf("Window(0) on empty file = (%v, %v)", w, err)
	}
}
