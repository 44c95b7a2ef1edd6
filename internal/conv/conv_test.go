package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(42); got != 42 {
		t.Errorf("IntToUint32(42) = %d, want 42", got)
	}
	assertPanics(t, "negative", func() { IntToUint32(-1) })
}

func TestInt64ToInt(t *testing.T) {
	if got := Int64ToInt(1 << 20); got != 1<<20 {
		t.Errorf("Int64ToInt(1<<20) = %d", got)
	}
	if got := Int64ToInt(math.MaxInt); got != math.MaxInt {
		t.Errorf("Int64ToInt(MaxInt) = %d", got)
	}
}

func TestIntToByte(t *testing.T) {
	if got := IntToByte(255); got != 0xFF {
		t.Errorf("IntToByte(255) = %d", got)
	}
	assertPanics(t, "256", func() { IntToByte(256) })
	assertPanics(t, "-1", func() { IntToByte(-1) })
}

func assertPanics(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}
