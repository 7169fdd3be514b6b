package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/datavista/datavista-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataVista configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		fmt.Printf("provider: %s\n", cfg.Provider)
		fmt.Printf("api_key: %s\n", mask(cfg.APIKey))
		fmt.Printf("remote_model: %s\n", cfg.RemoteModel)
		if cfg.RemoteBaseURL != "" {
			fmt.Printf("remote_base_url: %s\n", cfg.RemoteBaseURL)
		}
		fmt.Printf("ollama_host: %s\n", cfg.OllamaHost)
		fmt.Printf("ollama_model: %s\n", cfg.OllamaModel)
		fmt.Printf("ollama_timeout_sec: %d\n", cfg.OllamaTimeoutSec)
		fmt.Printf("http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if err := ensureConfig(); err != nil {
			return err
		}
		switch key {
		case "provider":
			switch strings.ToLower(val) {
			case "local", "ollama":
				cfg.Provider = "local"
			case "openai", "remote", "api":
				cfg.Provider = "openai"
			case "none":
				cfg.Provider = "none"
			default:
				return fmt.Errorf("invalid provider: %s (use local|openai|none)", val)
			}
		case "api_key":
			cfg.APIKey = val
		case "remote_model":
			cfg.RemoteModel = val
		case "remote_base_url":
			cfg.RemoteBaseURL = val
		case "ollama_host":
			cfg.OllamaHost = val
		case "ollama_model":
			cfg.OllamaModel = val
		case "ollama_timeout_sec", "http_timeout_sec":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid %s: %s (positive integer seconds)", key, val)
			}
			if key == "ollama_timeout_sec" {
				cfg.OllamaTimeoutSec = n
			} else {
				cfg.HTTPTimeoutSec = n
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
