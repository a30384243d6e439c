package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dreamingbumblebee/biopaper-parser/internal/pricing"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models and their pricing",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := pricing.NewRegistry()
			models := registry.Models()

			names := make([]string, 0, len(models))
			for name := range models {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				record, err := registry.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-14s $%.3f/$%.3f/$%.3f per 1M (in/cached/out)  %s\n",
					name,
					record.InputPerMTokens,
					record.CachedInputPerMTokens,
					record.OutputPerMTokens,
					record.Description,
				)
			}

			return nil
		},
	}
}
