package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "biopaper",
		Short:   "Extract structured polymer data tables from scientific PDFs",
		Version: version,
	}

	root.AddCommand(
		newExtractCmd(),
		newModelsCmd(),
		newCostCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
