package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dreamingbumblebee/biopaper-parser/internal/batch"
	"github.com/dreamingbumblebee/biopaper-parser/internal/config"
)

func newExtractCmd() *cobra.Command {
	var (
		model        string
		reportModel  string
		summaryPath  string
		enableReport bool
	)

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract polymer data from PDFs and write per-document CSVs",
		Long: `Sends each PDF to the selected model with a schema-constrained output
format, writes one <stem>_results.csv per document, and saves a cost summary
for the run. With no arguments, all *.pdf files in the working directory are
processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				var err error
				paths, err = filepath.Glob("*.pdf")
				if err != nil {
					return err
				}
			}
			if len(paths) == 0 {
				return errors.New("no PDF files found; pass file paths as arguments")
			}

			container := buildContainer()

			return container.Invoke(func(proc *batch.Processor, outCfg *config.OutputConfig) error {
				opts := batch.Options{
					Model:        model,
					EnableReport: enableReport,
					ReportModel:  reportModel,
					SummaryPath:  summaryPath,
				}
				if opts.SummaryPath == "" {
					opts.SummaryPath = outCfg.SummaryPath
				}

				result, err := proc.Run(cmd.Context(), paths, opts)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s: %d extracted, %d empty, %d failed, total cost $%.4f\n",
					result.RunID, len(result.Extracted), len(result.Empty), len(result.Failures), result.TotalCost)

				for _, path := range result.Empty {
					fmt.Fprintf(out, "  no data: %s\n", path)
				}
				for _, failure := range result.Failures {
					fmt.Fprintf(out, "  failed:  %s: %v\n", failure.Path, failure.Err)
				}

				if len(result.Failures) > 0 {
					return fmt.Errorf("%d of %d documents failed", len(result.Failures), len(paths))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "gpt-4.1-nano", "model to use for extraction")
	cmd.Flags().BoolVar(&enableReport, "enable-report", false, "generate a markdown report per document")
	cmd.Flags().StringVar(&reportModel, "report-model", batch.DefaultReportModel, "model used for report interpretation")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "cost summary destination (default from config)")

	return cmd
}
