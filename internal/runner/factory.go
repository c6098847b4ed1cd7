// SPDX-License-Identifier: MPL-2.0

package runner

// ForMode returns the runner implementation for the given mode.
func ForMode(m Mode) (Runner, error) {
	switch m {
	case ModeNative:
		return NewNativeRunner(), nil
	case ModeVirtual:
		return NewVirtualRunner(), nil
	default:
		return nil, &InvalidModeError{Value: m}
	}
}
