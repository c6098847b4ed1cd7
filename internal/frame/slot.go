// SPDX-License-Identifier: MPL-2.0

package frame

import (
	"c2sh-runtime/internal/word"
)

type (
	// Slot is a return slot: the destination a callee populates with its
	// result before returning. The convention reserves the first argument
	// position of every call for one. Functions with no natural result
	// repurpose it for a status code.
	Slot interface {
		// Set writes the callee's result into the slot.
		Set(w word.Word) error
		// Get reads the slot's current value.
		Get() (word.Word, error)
	}

	// GlobalSlot is a return slot backed by a named global variable.
	GlobalSlot struct {
		Globals *Globals
		Name    string
	}

	// StoreSlot is a return slot backed by a word-store address, the base
	// of an indirect write.
	StoreSlot struct {
		Store *word.Store
		Addr  word.Word
	}

	// ValueSlot is a self-contained return slot with no backing variable.
	// Hosts and tests use it to capture a single result.
	ValueSlot struct {
		w word.Word
	}
)

// Set implements Slot.
func (s *GlobalSlot) Set(w word.Word) error {
	return s.Globals.Set(s.Name, w)
}

// Get implements Slot.
func (s *GlobalSlot) Get() (word.Word, error) {
	return s.Globals.Get(s.Name), nil
}

// Set implements Slot.
func (s *StoreSlot) Set(w word.Word) error {
	return s.Store.Set(s.Addr, w)
}

// Get implements Slot.
func (s *StoreSlot) Get() (word.Word, error) {
	return s.Store.Load(s.Addr)
}

// Set implements Slot.
func (s *ValueSlot) Set(w word.Word) error {
	s.w = w
	return nil
}

// Get implements Slot.
func (s *ValueSlot) Get() (word.Word, error) {
	return s.w, nil
}

// Value returns the captured word without the error ceremony of Get.
func (s *ValueSlot) Value() word.Word {
	return s.w
}
