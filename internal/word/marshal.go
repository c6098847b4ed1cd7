// SPDX-License-Identifier: MPL-2.0

package word

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnterminatedString is the sentinel error wrapped by UnterminatedStringError.
	ErrUnterminatedString = errors.New("no terminating zero word before high-water mark")
	// ErrNullPointer is returned when a marshalling operation receives the null pointer.
	ErrNullPointer = errors.New("null pointer")
)

// UnterminatedStringError is returned when a pack operation walks from its
// base address to the store's high-water mark without finding a zero word.
// It wraps ErrUnterminatedString for errors.Is() compatibility.
type UnterminatedStringError struct {
	Base Word
}

// Error implements the error interface.
func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("C string at address %d: %s", e.Base, ErrUnterminatedString)
}

// Unwrap returns ErrUnterminatedString so callers can use errors.Is for programmatic detection.
func (e *UnterminatedStringError) Unwrap() error { return ErrUnterminatedString }

// UnpackString copies a host string into the store as a C string: one word
// per byte followed by a terminating zero word. Every call produces a fresh
// allocation; there is no interning. The base address is returned.
//
// Bytes are stored as-is, so any host string round-trips except ones that
// contain NUL, which C strings cannot represent.
func (s *Store) UnpackString(hs string) (Word, error) {
	base, err := s.Alloc(Word(len(hs)) + 1)
	if err != nil {
		return Null, err
	}
	for i := 0; i < len(hs); i++ {
		s.words[int(base)-1+i] = Word(hs[i])
	}
	// Alloc zero-initializes, so the terminator is already in place.
	return base, nil
}

// PackString reads the C string at addr back into a host string, stopping
// at the first zero word. A null or out-of-range address and a run with no
// terminator are reported as errors rather than read past.
func (s *Store) PackString(addr Word) (string, error) {
	if addr == Null {
		return "", fmt.Errorf("pack string: %w", ErrNullPointer)
	}
	high := s.HighWater()
	if addr < 1 || addr > high {
		return "", &BadAddressError{Addr: addr}
	}
	var b strings.Builder
	for a := addr; a <= high; a++ {
		w := s.words[a-1]
		if w == 0 {
			return b.String(), nil
		}
		b.WriteByte(byte(w))
	}
	return "", &UnterminatedStringError{Base: addr}
}

// UnpackLines splits a host string on newlines and stores each line as a
// fresh C string, returning the address of a null-terminated array of their
// addresses. A trailing newline does not produce an empty final line, so
// "a\nbb\n" yields the two entries "a" and "bb". An empty input yields an
// array holding only the null terminator.
func (s *Store) UnpackLines(hs string) (Word, error) {
	var lines []string
	if hs != "" {
		lines = strings.Split(strings.TrimSuffix(hs, "\n"), "\n")
	}
	arr, err := s.Alloc(Word(len(lines)) + 1)
	if err != nil {
		return Null, err
	}
	for i, line := range lines {
		cs, err := s.UnpackString(line)
		if err != nil {
			return Null, err
		}
		s.words[int(arr)-1+i] = cs
	}
	// Final slot stays zero: the null pointer terminator.
	return arr, nil
}

// PackLines reads the C string array at addr back into host strings,
// walking entries until the null pointer terminator. It is the inverse of
// UnpackLines up to newline placement.
func (s *Store) PackLines(addr Word) ([]string, error) {
	if addr == Null {
		return nil, fmt.Errorf("pack lines: %w", ErrNullPointer)
	}
	high := s.HighWater()
	var lines []string
	for a := addr; ; a++ {
		if a < 1 || a > high {
			return nil, &UnterminatedStringError{Base: addr}
		}
		entry := s.words[a-1]
		if entry == Null {
			return lines, nil
		}
		line, err := s.PackString(entry)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}
