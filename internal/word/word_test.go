// SPDX-License-Identifier: MPL-2.0

package word

import (
	"errors"
	"testing"
)

func TestAllocMonotonic(t *testing.T) {
	t.Parallel()

	s := NewStore()
	sizes := []Word{1, 5, 1, 100, 3}

	var prevBase, prevSize Word
	for i, n := range sizes {
		base, err := s.Alloc(n)
		if err != nil {
			t.Fatalf("Alloc(%d) failed: %v", n, err)
		}
		if base < 1 {
			t.Fatalf("Alloc(%d) returned non-positive address %d", n, base)
		}
		if i > 0 && base < prevBase+prevSize {
			t.Fatalf("Alloc(%d) returned %d, overlapping previous run [%d, %d)", n, base, prevBase, prevBase+prevSize)
		}
		prevBase, prevSize = base, n
	}

	if got, want := s.HighWater(), Word(110); got != want {
		t.Errorf("HighWater() = %d, want %d", got, want)
	}
}

func TestAllocZeroInitialized(t *testing.T) {
	t.Parallel()

	s := NewStore()
	base, err := s.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc(4) failed: %v", err)
	}
	for i := Word(0); i < 4; i++ {
		w, err := s.Load(base + i)
		if err != nil {
			t.Fatalf("Load(%d) failed: %v", base+i, err)
		}
		if w != 0 {
			t.Errorf("fresh word at %d = %d, want 0", base+i, w)
		}
	}
}

func TestAllocBadSize(t *testing.T) {
	t.Parallel()

	s := NewStore()
	for _, n := range []Word{0, -1, -100} {
		if _, err := s.Alloc(n); !errors.Is(err, ErrBadSize) {
			t.Errorf("Alloc(%d) error = %v, want ErrBadSize", n, err)
		}
	}
}

func TestAllocExhaustion(t *testing.T) {
	t.Parallel()

	s := NewStore()
	base, err := s.Alloc(2)
	if err != nil {
		t.Fatalf("Alloc(2) failed: %v", err)
	}
	if err := s.Set(base, 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// The store already holds 2 words, so 2^31-1 more cannot fit.
	_, err = s.Alloc(MaxAddr)
	if !errors.Is(err, ErrAllocOverflow) {
		t.Fatalf("Alloc(MaxAddr) error = %v, want ErrAllocOverflow", err)
	}
	var oe *OverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("Alloc(MaxAddr) error type = %T, want *OverflowError", err)
	}
	if oe.HighWater != 2 {
		t.Errorf("OverflowError.HighWater = %d, want 2", oe.HighWater)
	}

	// Existing contents must survive a failed allocation.
	if got, _ := s.Load(base); got != 42 {
		t.Errorf("word at %d after failed alloc = %d, want 42", base, got)
	}
	if got := s.HighWater(); got != 2 {
		t.Errorf("HighWater() after failed alloc = %d, want 2", got)
	}
}

func TestAllocWithLimit(t *testing.T) {
	t.Parallel()

	s := NewStore(WithLimit(10))
	if _, err := s.Alloc(10); err != nil {
		t.Fatalf("Alloc(10) within limit failed: %v", err)
	}
	if _, err := s.Alloc(1); !errors.Is(err, ErrAllocOverflow) {
		t.Errorf("Alloc(1) past limit error = %v, want ErrAllocOverflow", err)
	}
}

func TestFreeIsNoOp(t *testing.T) {
	t.Parallel()

	s := NewStore()
	base, err := s.Alloc(3)
	if err != nil {
		t.Fatalf("Alloc(3) failed: %v", err)
	}
	if err := s.Set(base+1, 7); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Free(base); err != nil {
		t.Fatalf("Free(%d) failed: %v", base, err)
	}

	// Freed words stay valid and freed space is never reused.
	if got, _ := s.Load(base + 1); got != 7 {
		t.Errorf("word at %d after Free = %d, want 7", base+1, got)
	}
	next, err := s.Alloc(1)
	if err != nil {
		t.Fatalf("Alloc(1) after Free failed: %v", err)
	}
	if next <= base+2 {
		t.Errorf("Alloc after Free returned %d, want an address past the freed run", next)
	}
}

func TestFreeBadAddress(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if _, err := s.Alloc(2); err != nil {
		t.Fatalf("Alloc(2) failed: %v", err)
	}

	for _, addr := range []Word{0, -1, 3, 100} {
		if err := s.Free(addr); !errors.Is(err, ErrBadAddress) {
			t.Errorf("Free(%d) error = %v, want ErrBadAddress", addr, err)
		}
	}
}

func TestLoadSetBounds(t *testing.T) {
	t.Parallel()

	s := NewStore()
	base, err := s.Alloc(2)
	if err != nil {
		t.Fatalf("Alloc(2) failed: %v", err)
	}

	if err := s.Set(base, -123); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, err := s.Load(base); err != nil || got != -123 {
		t.Errorf("Load(%d) = (%d, %v), want (-123, nil)", base, got, err)
	}

	for _, addr := range []Word{0, 3, -5} {
		if _, err := s.Load(addr); !errors.Is(err, ErrBadAddress) {
			t.Errorf("Load(%d) error = %v, want ErrBadAddress", addr, err)
		}
		if err := s.Set(addr, 1); !errors.Is(err, ErrBadAddress) {
			t.Errorf("Set(%d) error = %v, want ErrBadAddress", addr, err)
		}
	}
}

func TestPointerArithmetic(t *testing.T) {
	t.Parallel()

	// Addresses are plain integers: indexing is base + i, nothing more.
	s := NewStore()
	base, err := s.Alloc(5)
	if err != nil {
		t.Fatalf("Alloc(5) failed: %v", err)
	}
	for i := Word(0); i < 5; i++ {
		if err := s.Set(base+i, i*i); err != nil {
			t.Fatalf("Set(%d) failed: %v", base+i, err)
		}
	}
	if got, _ := s.Load(base + 3); got != 9 {
		t.Errorf("Load(base+3) = %d, want 9", got)
	}
}
