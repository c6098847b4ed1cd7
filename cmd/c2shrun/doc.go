// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for c2shrun.
//
// This package implements the Cobra command hierarchy for the c2shrun CLI:
// the root command, program execution (run, eval) and configuration
// management.
package cmd
