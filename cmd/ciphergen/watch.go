package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/ciphergen"
	"github.com/aretw0/ciphergen/pkg/adapters/fs"
	"github.com/aretw0/ciphergen/pkg/batch"
	"github.com/aretw0/ciphergen/pkg/core"
)

var (
	watchIterations int
	watchLengths    []int
	watchCiphers    []string
	watchInterval   time.Duration
	watchFixed      bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Follow the progress of a generation running elsewhere",
	Long: `Watch the dataset files under root (default "data") as another ciphergen
process writes them, printing record counts until every file is complete or the
command is interrupted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signalContext()
		defer stop()

		root := "data"
		if len(args) == 1 {
			root = args[0]
		}

		ciphers := core.AllCiphers()
		if len(watchCiphers) > 0 {
			var err error
			if ciphers, err = ciphergen.ParseCiphers(watchCiphers); err != nil {
				fatal("Invalid --ciphers", err)
			}
		}
		lengths := watchLengths
		if len(lengths) == 0 {
			lengths = batch.DefaultLengths
		}
		plan := batch.Plan{Ciphers: ciphers, Lengths: lengths, Iterations: watchIterations}

		var targets []fs.Target
		for _, t := range plan.Tasks() {
			tg := fs.Target{Cipher: t.Cipher, Length: t.Length, Total: t.Iterations}
			if watchFixed && t.Cipher == core.Vigenere {
				tg.Variant = fs.FixedKeyVariant
			}
			targets = append(targets, tg)
		}

		w := fs.NewWatcher(root, watchInterval, slog.Default())
		events, err := w.Watch(ctx, targets)
		if err != nil {
			fatal("Failed to watch datasets", err)
		}

		complete := make(map[string]bool, len(targets))
		for p := range events {
			fmt.Println(p.String())
			if p.Complete() {
				complete[fmt.Sprintf("%s/%d", p.Cipher, p.Length)] = true
				if len(complete) == len(targets) {
					stop()
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVarP(&watchIterations, "iterations", "n", batch.DefaultIterations, "Records expected per file")
	watchCmd.Flags().IntSliceVar(&watchLengths, "lengths", nil, "Plaintext lengths (default 100,200,300,500,1000)")
	watchCmd.Flags().StringSliceVar(&watchCiphers, "ciphers", nil, "Ciphers (default: all)")
	watchCmd.Flags().BoolVar(&watchFixed, "fixed-vigenere", false, "Follow the fixed-key Vigenere datasets")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "Refresh interval")
}
