package dump

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmlab/emshim/wasm"
)

func Command() *cobra.Command {
	command := &cobra.Command{
		Use:   "dump [path to module]",
		Short: "Dump a module's import table",
		Long:  "Dump a WebAssembly module's import table in CSV format",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			mod, err := wasm.DecodeModule(f)
			if err != nil {
				return err
			}

			return dumpImports(os.Stdout, mod)
		},
	}

	return command
}
