package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"tamewtf/relay/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply environment overrides, and report
whether the result is valid.

Examples:
  # Validate the default configuration (environment only)
  relay validate

  # Validate a configuration file
  relay validate --config /etc/relay/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		var validationErr config.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Println("Configuration is invalid:")
			for _, fieldErr := range validationErr.Errors {
				fmt.Printf("  - %s\n", fieldErr.Error())
			}
			return fmt.Errorf("%d validation error(s)", len(validationErr.Errors))
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Listen address: %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  Request timeout: %s\n", cfg.Server.RequestTimeout)
	fmt.Printf("  LastFM limit: %d requests / %s\n",
		cfg.Limits.LastFM.MaxRequests, cfg.Limits.LastFM.Window)
	fmt.Printf("  Global limit: %d requests / %s\n",
		cfg.Limits.Global.MaxRequests, cfg.Limits.Global.Window)

	if cfg.Upstreams.LastFM.APIKey == "" {
		fmt.Println("  Warning: LastFM API key not set; /lastfm endpoints will answer 500")
	}
	if cfg.Upstreams.Discord.BotToken == "" {
		fmt.Println("  Warning: Discord bot token not set; /discord/profile will answer 500")
	}

	return nil
}
