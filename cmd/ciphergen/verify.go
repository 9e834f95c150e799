package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ciphergen"
)

var (
	verifyPattern  string
	verifyExpected int
)

var verifyCmd = &cobra.Command{
	Use:   "verify [root]",
	Short: "Check generated dataset files",
	Long: `Check every dataset file under root (default "data"): each line parses,
ciphertexts have the file's length, keys are valid, and with --expected each
file holds exactly that many records.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signalContext()
		defer stop()

		root := "data"
		if len(args) == 1 {
			root = args[0]
		}

		checks, err := ciphergen.Verify(ctx, root, verifyPattern, verifyExpected)
		if err != nil {
			fatal("Verification failed", err)
		}
		if len(checks) == 0 {
			fmt.Fprintf(os.Stderr, "no dataset files under %s\n", root)
			os.Exit(1)
		}

		failed := 0
		for _, c := range checks {
			if c.OK() {
				fmt.Printf("ok    %s (%d records)\n", c.Path, c.Records)
				continue
			}
			failed++
			fmt.Printf("FAIL  %s (%d records)\n", c.Path, c.Records)
			for _, p := range c.Problems {
				fmt.Printf("      %s\n", p)
			}
		}
		if failed > 0 {
			fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(checks))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyPattern, "pattern", "", "Glob of files to check, relative to root (default **/text_length_*.txt)")
	verifyCmd.Flags().IntVar(&verifyExpected, "expected", 0, "Expected records per file (0 skips the count check)")
}
