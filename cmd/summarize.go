package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/insight"
	"github.com/datavista/datavista-cli/internal/summarize"
)

var (
	sumProvider   string
	sumModel      string
	sumSheet      string
	sumTimeoutSec int
	sumRaw        bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Print the AI-enhanced narrative summary of a dataset",
	Example: `  datavista summarize sales.csv
  datavista summarize sales.csv --raw
  datavista summarize sales.csv --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0], sumSheet)
		if err != nil {
			return err
		}
		narrative := insight.Compose(insight.Extract(ds))
		if sumRaw {
			fmt.Print(narrative.Text())
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(sumTimeoutSec)*time.Second)
		defer cancel()

		backend, err := newBackend(ctx, sumProvider, sumModel)
		if err != nil {
			return err
		}
		res := backend.Summarize(ctx, narrative.Text())
		if res.Source == summarize.SourceFallback {
			fmt.Println("⚠ AI summarization unavailable; showing the standard narrative.")
		}
		fmt.Println(res.Text)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&sumProvider, "provider", "", "summarization backend: local|openai|none (default from config)")
	summarizeCmd.Flags().StringVar(&sumModel, "model", "", "model name (default from config)")
	summarizeCmd.Flags().StringVar(&sumSheet, "sheet", "", "sheet name for .xlsx input (default first sheet)")
	summarizeCmd.Flags().IntVar(&sumTimeoutSec, "timeout-sec", 180, "overall timeout for summarization")
	summarizeCmd.Flags().BoolVar(&sumRaw, "raw", false, "print the composed narrative without backend enhancement")
	rootCmd.AddCommand(summarizeCmd)
}
