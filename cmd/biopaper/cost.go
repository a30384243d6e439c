package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dreamingbumblebee/biopaper-parser/internal/history"
	"github.com/dreamingbumblebee/biopaper-parser/internal/ledger"
)

func newCostCmd() *cobra.Command {
	var (
		summaryPath string
		dbPath      string
		runID       string
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Show the persisted cost summary or request history totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if dbPath != "" {
				store, err := history.Open(dbPath)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				totals, err := store.TotalsByModel(context.Background(), runID)
				if err != nil {
					return err
				}
				if len(totals) == 0 {
					fmt.Fprintln(out, "No request history found.")
					return nil
				}

				fmt.Fprintf(out, "%-25s %8s %12s\n", "MODEL", "REQUESTS", "COST")
				fmt.Fprintln(out, strings.Repeat("-", 47))
				var total float64
				for _, mt := range totals {
					fmt.Fprintf(out, "%-25s %8d $%10.4f\n", mt.Model, mt.Requests, mt.CostUSD)
					total += mt.CostUSD
				}
				fmt.Fprintln(out, strings.Repeat("-", 47))
				fmt.Fprintf(out, "%34s $%10.4f\n", "TOTAL:", total)
				return nil
			}

			summary, err := ledger.Load(summaryPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Cost summary (%s)\n", summary.Timestamp)
			fmt.Fprintf(out, "Total: $%.4f\n\n", summary.TotalCost)

			fmt.Fprintln(out, "By model:")
			for _, name := range sortedKeys(summary.CostByModel) {
				fmt.Fprintf(out, "  %-25s $%.4f\n", name, summary.CostByModel[name])
			}

			fmt.Fprintln(out, "By file:")
			for _, name := range sortedKeys(summary.CostByFile) {
				fmt.Fprintf(out, "  %-40s $%.4f\n", name, summary.CostByFile[name])
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&summaryPath, "summary", ledger.DefaultSummaryFile, "path to a persisted cost summary")
	cmd.Flags().StringVar(&dbPath, "db", "", "query the request history database instead")
	cmd.Flags().StringVar(&runID, "run", "", "restrict history totals to one run ID")

	return cmd
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
