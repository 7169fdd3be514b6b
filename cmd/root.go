package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/datavista/datavista-cli/internal/config"
	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/summarize"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// HTTP flag (overrides config if set)
	flagHTTPTimeoutSec int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "datavista",
	Short: "DataVista CLI: turn a tabular dataset into an AI-enhanced insight report",
	Long:  `DataVista ingests a CSV/TSV/XLSX dataset, derives statistical facts, composes a narrative summary, enhances it through a local or remote summarization backend, and renders a downloadable PDF report.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datavista/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
}

func loadConfig() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
}

// ensureConfig loads config on demand for commands invoked before
// OnInitialize ran (e.g., in tests).
func ensureConfig() error {
	if cfg != nil {
		return nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// newBackend builds the summarization backend selected by provider,
// falling back to the configured default when provider is empty. Model
// overrides the configured model when non-empty. A missing API key for the
// remote variant is a configuration error returned before any network call.
func newBackend(ctx context.Context, provider, model string) (summarize.Backend, error) {
	if err := ensureConfig(); err != nil {
		return nil, err
	}
	if provider == "" {
		provider = cfg.Provider
	}
	switch strings.ToLower(provider) {
	case "local", "ollama":
		m := model
		if m == "" {
			m = cfg.OllamaModel
		}
		runtime := summarize.NewOllamaClient(cfg.OllamaHost, time.Duration(cfg.OllamaTimeoutSec)*time.Second)
		return summarize.NewLocal(ctx, runtime, m, slog.Default()), nil
	case "openai", "remote", "api":
		m := model
		if m == "" {
			m = cfg.RemoteModel
		}
		return summarize.NewRemote(cfg.APIKey, m, cfg.RemoteBaseURL, slog.Default())
	case "none":
		return summarize.Passthrough{}, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (use local|openai|none)", provider)
	}
}

// loadDataset dispatches on the file extension.
func loadDataset(path, sheet string) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return dataset.LoadXLSX(path, sheet)
	case ".csv", ".tsv":
		return dataset.LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (use .csv, .tsv, or .xlsx)", path)
	}
}
