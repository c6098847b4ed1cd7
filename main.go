// SPDX-License-Identifier: MPL-2.0

package main

import cmd "c2sh-runtime/cmd/c2shrun"

func main() {
	cmd.Execute()
}
