package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ciphergen",
	Short: "Generate labeled classical-cipher datasets from a plaintext corpus",
	Long: `ciphergen samples fixed-length texts from a natural-language corpus, encrypts
them with shift, columnar transposition, Vigenere, Playfair and Hill ciphers under
random keys, and writes one labeled dataset file per (cipher, length).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// signalContext is cancelled on SIGINT or SIGTERM. stop cancels it and
// restores default signal handling.
func signalContext() (context.Context, func()) {
	ctx := lifecycle.NewSignalContext(context.Background())
	return ctx, func() {
		ctx.Cancel()
		ctx.Stop()
	}
}
