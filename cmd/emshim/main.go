package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmlab/emshim/cmd/emshim/detect"
	"github.com/wasmlab/emshim/cmd/emshim/dump"
)

var version = "<unknown>"

func configureCLI() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "emshim",
		Short:         "emshim Emscripten module tooling",
		Long:          "emshim - tooling for the Emscripten compatibility shim",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCommand.AddCommand(detect.Command())
	rootCommand.AddCommand(dump.Command())

	return rootCommand
}

func main() {
	rootCommand := configureCLI()

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
