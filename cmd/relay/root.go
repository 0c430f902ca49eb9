package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "relay - API proxy for tame.wtf",
	Long: `Relay fronts the LastFM and Discord APIs for the tame.wtf portfolio
site. Credentials stay server-side; browsers talk only to the relay.

It provides:
  - Normalized LastFM listening data (/lastfm/recent, /lastfm/top-tracks)
  - Discord profile lookups (/discord/profile)
  - Sliding-window rate limiting and request timeouts
  - Security headers and CORS for browser clients`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Config path is optional: with no file the relay boots on defaults
	// and reads credentials from the environment.
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
