package detect

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmlab/emshim/emscripten"
	"github.com/wasmlab/emshim/wasm"
)

// ErrNotEmscripten is returned when the module lacks the Emscripten import
// fingerprint; the CLI maps it to a nonzero exit status.
var ErrNotEmscripten = errors.New("not an Emscripten module")

func Command() *cobra.Command {
	var quiet bool

	command := &cobra.Command{
		Use:   "detect [path to module]",
		Short: "Detect Emscripten-generated modules",
		Long:  "Report whether a WebAssembly module was produced by the Emscripten toolchain",
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

			isEmscripten := emscripten.IsEmscriptenModule(mod)
			if !quiet {
				fmt.Printf("emscripten: %v\n", isEmscripten)
				fmt.Printf("heap allocator export: %v\n", mod.ExportsFunction("_malloc", "malloc"))
				fmt.Printf("stack allocator export: %v\n", mod.ExportsFunction("_stackAlloc", "stackAlloc"))
			}
			if !isEmscripten {
				return ErrNotEmscripten
			}
			return nil
		},
	}

	command.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output; report via exit status only")

	return command
}
