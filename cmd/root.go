// Package cmd implements the CLI commands for pinpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pinpipe/config"
)

var (
	flagConfig string

	// cfg is populated by the root PersistentPreRunE before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pinpipe",
	Short: "pinpipe: turn map and trail links into saved places",
	Long: `pinpipe extracts a place (name, coordinates, description and, for trails,
distance and elevation gain) from Google Maps, Apple Maps and AllTrails URLs
and saves it to a place store.

Usage:
  pinpipe add <url-or-file> [flags]
  pinpipe regions [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if err := config.InitLogger(loaded.Log); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ./pinpipe.yaml or ~/.config/pinpipe/pinpipe.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
