// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [source]",
	Short: "Evaluate inline translated shell source",
	Long: `Evaluate a fragment of translated shell source without a file.

The source may use the reserved __rt runtime command directly, which
makes eval handy for poking at the runtime:

  c2shrun eval '_s=$(__rt unpack_string "hi"); __rt pack_string "$_s"'

With no argument the source is read from standard input. Note that
programs reading their own stdin (getchar) need the run command and a
file, since eval's stdin carries the source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src string
		if len(args) == 1 {
			src = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read source from stdin: %w", err)
			}
			src = string(data)
		}

		host, err := newHost(cmd)
		if err != nil {
			return err
		}

		return executeProgram(cmd, host, "eval", src, nil)
	},
}

func init() {
	addRuntimeFlags(evalCmd)
}
