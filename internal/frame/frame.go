// SPDX-License-Identifier: MPL-2.0

package frame

import (
	"fmt"
	"sort"
	"strings"

	"c2sh-runtime/internal/word"
)

type (
	// Frame snapshots a set of shared globals on entry to a call and puts
	// them back on exit. It is the stack-frame emulation: acquire a frame
	// for every shared global the function mutates but does not own, and
	// restore it on every exit path, normal or failing.
	//
	//	f, err := globals.Enter("_cursor", "_line")
	//	if err != nil { ... }
	//	defer f.Restore()
	//
	// Restore is idempotent, so an early explicit Restore followed by the
	// deferred one is harmless.
	Frame struct {
		g        *Globals
		saved    map[string]word.Word
		restored bool
	}

	// ViolationError reports shared globals whose values differ across a
	// call that did not declare ownership of them, the silent-corruption
	// failure mode the save/restore protocol exists to prevent. It is only
	// produced by Audit, the debug-mode checker.
	ViolationError struct {
		Names []string
	}
)

// Error implements the error interface.
func (e *ViolationError) Error() string {
	return fmt.Sprintf("shared globals not restored on exit: %s", strings.Join(e.Names, ", "))
}

// Enter snapshots the named shared globals and returns the frame guarding
// them. Every name must be in the shared tier; reserved and scratch names
// never need the protocol.
func (g *Globals) Enter(names ...string) (*Frame, error) {
	saved := make(map[string]word.Word, len(names))
	for _, name := range names {
		if TierOf(name) != TierShared {
			return nil, fmt.Errorf("enter frame for %q: %w", name, ErrNotShared)
		}
		saved[name] = g.vars[name]
	}
	return &Frame{g: g, saved: saved}, nil
}

// Restore writes the snapshotted values back. Safe to call more than once;
// only the first call has any effect.
func (f *Frame) Restore() {
	if f.restored {
		return
	}
	f.restored = true
	for name, w := range f.saved {
		// Direct write: restoring is the protocol, not a mutation to track.
		f.g.vars[name] = w
	}
}

// Saved reports whether the frame guards the given name.
func (f *Frame) Saved(name string) bool {
	_, ok := f.saved[name]
	return ok
}

// Audit runs fn and reports shared globals whose values changed across the
// call, excluding names the callee declared it owns. It is the debug-mode
// shadow check for convention violations; production runs skip it entirely.
func (g *Globals) Audit(owned []string, fn func()) *ViolationError {
	ownedSet := make(map[string]struct{}, len(owned))
	for _, name := range owned {
		ownedSet[name] = struct{}{}
	}

	before := make(map[string]word.Word)
	for name, w := range g.vars {
		if TierOf(name) == TierShared {
			before[name] = w
		}
	}

	prev := g.tracking
	g.tracking = make(map[string]struct{})
	fn()
	touched := g.tracking
	g.tracking = prev

	var dirty []string
	for name := range touched {
		if _, ok := ownedSet[name]; ok {
			continue
		}
		if g.vars[name] != before[name] {
			dirty = append(dirty, name)
		}
	}
	// Shared globals introduced by the call are corruption too.
	for name, w := range g.vars {
		if TierOf(name) != TierShared || w == 0 {
			continue
		}
		if _, seen := before[name]; !seen {
			if _, ok := ownedSet[name]; !ok {
				if _, already := touched[name]; !already {
					dirty = append(dirty, name)
				}
			}
		}
	}
	if len(dirty) == 0 {
		return nil
	}
	sort.Strings(dirty)
	return &ViolationError{Names: dirty}
}
