// SPDX-License-Identifier: MPL-2.0

// Package frame emulates C stack-frame semantics over a flat, globally
// scoped variable namespace, the calling convention the c2sh translator
// compiles against.
//
// The target has no lexical scoping and no call stack, so the convention
// substitutes a naming discipline plus a save/restore protocol:
//
//   - single-underscore names ("_buf") are shared globals, visible across
//     function boundaries;
//   - double-underscore names ("__cursor") are reserved for the runtime's
//     own bookkeeping and must never be touched by translated code;
//   - triple-underscore names ("___tmp") are scratch space, free for the
//     current owner to clobber.
//
// A function that mutates a shared global it does not own must save it on
// entry and restore it on every exit path, or recursive and reentrant calls
// silently corrupt the caller's in-flight state. Frame models that protocol
// as an owned object restored under defer rather than by manual discipline.
package frame

import (
	"errors"
	"fmt"
	"strings"

	"c2sh-runtime/internal/word"
)

// Name tiers, classified by underscore prefix depth.
const (
	// TierInvalid marks names that do not follow the convention at all.
	TierInvalid Tier = iota
	// TierShared is the single-underscore tier: program globals that
	// require save/restore discipline across calls.
	TierShared
	// TierReserved is the double-underscore tier: runtime bookkeeping,
	// off-limits to translated and user code.
	TierReserved
	// TierScratch is the triple-underscore tier: caller-private scratch.
	TierScratch
)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("name does not follow the underscore-tier convention")
	// ErrReservedName is the sentinel error wrapped by ReservedNameError.
	ErrReservedName = errors.New("name is reserved for the runtime")
	// ErrNotShared is returned when a frame is asked to guard a name
	// outside the shared tier; only shared globals need the protocol.
	ErrNotShared = errors.New("only shared (single-underscore) globals can be framed")
)

type (
	// Tier identifies which namespace partition a variable name belongs to.
	Tier int

	// Globals is the flat name-to-word table standing in for the target's
	// variable namespace. Unset names read as zero, matching the target,
	// where expanding an unset variable in arithmetic yields 0.
	Globals struct {
		vars map[string]word.Word

		// tracking records writes to shared names while an Audit is in
		// flight. Nil when shadow tracking is disabled.
		tracking map[string]struct{}
	}

	// InvalidNameError is returned for names with no underscore prefix.
	// It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Name string
	}

	// ReservedNameError is returned when translated or user code writes a
	// runtime-reserved name. It wraps ErrReservedName for errors.Is()
	// compatibility.
	ReservedNameError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("variable %q: %s", e.Name, ErrInvalidName)
}

// Unwrap returns ErrInvalidName so callers can use errors.Is for programmatic detection.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("variable %q: %s", e.Name, ErrReservedName)
}

// Unwrap returns ErrReservedName so callers can use errors.Is for programmatic detection.
func (e *ReservedNameError) Unwrap() error { return ErrReservedName }

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case TierShared:
		return "shared"
	case TierReserved:
		return "reserved"
	case TierScratch:
		return "scratch"
	default:
		return "invalid"
	}
}

// TierOf classifies a variable name by its underscore prefix depth.
// Three or more underscores all land in the scratch tier.
func TierOf(name string) Tier {
	if name == "" || name[0] != '_' {
		return TierInvalid
	}
	switch {
	case strings.HasPrefix(name, "___"):
		return TierScratch
	case strings.HasPrefix(name, "__"):
		return TierReserved
	default:
		return TierShared
	}
}

// NewGlobals returns an empty namespace.
func NewGlobals() *Globals {
	return &Globals{vars: make(map[string]word.Word)}
}

// Get reads a variable. Unset names read as zero.
func (g *Globals) Get(name string) word.Word {
	return g.vars[name]
}

// Set writes a variable on behalf of translated or user code. Writes to the
// reserved tier are rejected; the runtime itself uses SetReserved.
func (g *Globals) Set(name string, w word.Word) error {
	switch TierOf(name) {
	case TierInvalid:
		return &InvalidNameError{Name: name}
	case TierReserved:
		return &ReservedNameError{Name: name}
	default:
	}
	if g.tracking != nil && TierOf(name) == TierShared {
		g.tracking[name] = struct{}{}
	}
	g.vars[name] = w
	return nil
}

// SetReserved writes a runtime-reserved (double-underscore) variable. It is
// the runtime-internal write path; name must be in the reserved tier.
func (g *Globals) SetReserved(name string, w word.Word) error {
	if TierOf(name) != TierReserved {
		return &InvalidNameError{Name: name}
	}
	g.vars[name] = w
	return nil
}
