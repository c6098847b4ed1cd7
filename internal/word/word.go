// SPDX-License-Identifier: MPL-2.0

// Package word implements the flat, word-addressable memory model that
// translated C programs run against: a growable store of 32-bit words, a
// bump allocator over it, and the C-string marshalling primitives.
//
// A Word is interpreted contextually as a plain integer, a character code,
// or an address into the store. There is no tagging; interpretation is the
// caller's responsibility, and address arithmetic is ordinary integer
// arithmetic. The store is 1-indexed so that address 0 can serve as the
// null pointer.
package word

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxAddr is the highest address the store can ever hand out. The
	// translated programs run on 32-bit signed arithmetic, so addresses
	// beyond this are unrepresentable on the target.
	MaxAddr = math.MaxInt32

	// Null is the null pointer. The store never maps address 0.
	Null Word = 0
)

var (
	// ErrAllocOverflow is the sentinel error wrapped by OverflowError.
	ErrAllocOverflow = errors.New("allocation exceeds address space")
	// ErrBadAddress is the sentinel error wrapped by BadAddressError.
	ErrBadAddress = errors.New("address outside allocated store")
	// ErrBadSize is returned when an allocation size is not positive.
	ErrBadSize = errors.New("allocation size must be positive")
)

type (
	// Word is the atomic storage unit. It holds a signed 32-bit value that
	// callers interpret as an integer, a character code, or an address.
	Word = int32

	// Store is the global word store: an append-only sequence of words
	// backing all dynamically allocated data of a translated program.
	// Addresses are 1-based; address 0 is the null pointer.
	//
	// A Store is not safe for concurrent use. The execution model is a
	// single synchronous interpreter; anything that shares one Store across
	// goroutines must serialize access itself.
	Store struct {
		words []Word
		limit int64
	}

	// StoreOption configures a Store at construction time.
	StoreOption func(*Store)

	// OverflowError is returned when an allocation would push the store's
	// high-water mark past the addressable range. It is fatal: a program
	// that exhausts the 32-bit address space cannot continue.
	// It wraps ErrAllocOverflow for errors.Is() compatibility.
	OverflowError struct {
		Requested Word
		HighWater Word
	}

	// BadAddressError is returned when an address falls outside the
	// allocated store. It wraps ErrBadAddress for errors.Is() compatibility.
	BadAddressError struct {
		Addr Word
	}
)

// Error implements the error interface.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("cannot allocate %d words at high-water mark %d: address space is limited to %d words", e.Requested, e.HighWater, int64(MaxAddr))
}

// Unwrap returns ErrAllocOverflow so callers can use errors.Is for programmatic detection.
func (e *OverflowError) Unwrap() error { return ErrAllocOverflow }

// Error implements the error interface.
func (e *BadAddressError) Error() string {
	return fmt.Sprintf("address %d is outside the allocated store", e.Addr)
}

// Unwrap returns ErrBadAddress so callers can use errors.Is for programmatic detection.
func (e *BadAddressError) Unwrap() error { return ErrBadAddress }

// WithLimit caps the store at maxWords addressable words. Values above
// MaxAddr are clamped. Used by tests and by the store.max_words config key
// to exercise exhaustion behavior without allocating gigabytes.
func WithLimit(maxWords int64) StoreOption {
	return func(s *Store) {
		if maxWords > 0 && maxWords <= MaxAddr {
			s.limit = maxWords
		}
	}
}

// NewStore returns an empty store. The zero high-water mark means every
// address is invalid until the first allocation.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{limit: MaxAddr}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HighWater returns the highest valid address, or 0 for an empty store.
func (s *Store) HighWater() Word {
	return Word(len(s.words))
}

// Alloc extends the store by n fresh zero-initialized words and returns the
// address of the first one. Returned addresses are strictly increasing and
// never reused; there is no reclamation. Alloc fails with an OverflowError
// when the resulting high-water mark would exceed the store's limit, in
// which case existing contents are untouched.
func (s *Store) Alloc(n Word) (Word, error) {
	if n <= 0 {
		return Null, fmt.Errorf("alloc %d words: %w", n, ErrBadSize)
	}
	high := int64(len(s.words))
	if high+int64(n) > s.limit {
		return Null, &OverflowError{Requested: n, HighWater: Word(high)}
	}
	base := Word(high) + 1
	s.words = append(s.words, make([]Word, n)...)
	return base, nil
}

// Free releases an allocation. It performs no reclamation: the words stay
// valid and the space is never reused. It exists for API symmetry and for
// forward compatibility with a reclaiming allocator; it only verifies that
// the address was ever handed out.
func (s *Store) Free(addr Word) error {
	if addr < 1 || addr > s.HighWater() {
		return &BadAddressError{Addr: addr}
	}
	return nil
}

// Load reads the word at addr. Dereference is exactly this: no tag checks,
// no interpretation.
func (s *Store) Load(addr Word) (Word, error) {
	if addr < 1 || addr > s.HighWater() {
		return 0, &BadAddressError{Addr: addr}
	}
	return s.words[addr-1], nil
}

// Set writes the word at addr.
func (s *Store) Set(addr, w Word) error {
	if addr < 1 || addr > s.HighWater() {
		return &BadAddressError{Addr: addr}
	}
	s.words[addr-1] = w
	return nil
}
