package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/pipeline"
	"github.com/datavista/datavista-cli/internal/summarize"
	"github.com/datavista/datavista-cli/internal/utils"
)

var (
	repOutputPath string
	repProvider   string
	repModel      string
	repSheet      string
	repTimeoutSec int
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Generate a PDF insight report from a dataset",
	Example: `  datavista report sales.csv
  datavista report sales.xlsx --sheet Q3 --output q3_report.pdf
  datavista report sales.csv --provider openai --model gpt-4o-mini
  datavista report sales.csv --provider none`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ds, err := loadDataset(path, repSheet)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(repTimeoutSec)*time.Second)
		defer cancel()

		backend, err := newBackend(ctx, repProvider, repModel)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		res, err := pipeline.New(backend, nil).RunReport(ctx, ds, &buf)
		if err != nil {
			return err
		}

		out := repOutputPath
		if out == "" {
			out = strings.TrimSuffix(path, filepath.Ext(path)) + "_report.pdf"
		}
		if dir := filepath.Dir(out); dir != "." {
			if err := utils.EnsureDir(dir); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		if res.Summary.Source == summarize.SourceFallback {
			fmt.Println("⚠ AI summarization unavailable; report uses the standard narrative.")
		}
		fmt.Printf("✓ Report %s written to %s (source: %s)\n", res.ID, out, res.Summary.Source)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "output PDF path (default <file>_report.pdf)")
	reportCmd.Flags().StringVar(&repProvider, "provider", "", "summarization backend: local|openai|none (default from config)")
	reportCmd.Flags().StringVar(&repModel, "model", "", "model name (default from config)")
	reportCmd.Flags().StringVar(&repSheet, "sheet", "", "sheet name for .xlsx input (default first sheet)")
	reportCmd.Flags().IntVar(&repTimeoutSec, "timeout-sec", 180, "overall timeout for the pipeline run")
	rootCmd.AddCommand(reportCmd)
}
