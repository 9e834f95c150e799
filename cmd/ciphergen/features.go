package main

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/ciphergen/pkg/adapters/fs"
	"github.com/aretw0/ciphergen/pkg/dataset"
)

var (
	featPattern   string
	featPrefix    int
	featNormalize bool
)

var featuresCmd = &cobra.Command{
	Use:   "features [root]",
	Short: "Export letter-frequency features as CSV",
	Long: `Write one CSV row per record: the cipher label, the text length, then the 26
letter counts of the first --prefix ciphertext letters (relative frequencies
with --normalize). Records shorter than the prefix are skipped.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "data"
		if len(args) == 1 {
			root = args[0]
		}

		entries, err := fs.Discover(root, featPattern)
		if err != nil {
			fatal("Failed to list datasets", err)
		}

		w := csv.NewWriter(os.Stdout)
		header := []string{"label", "length"}
		for c := 'a'; c <= 'z'; c++ {
			header = append(header, string(c))
		}
		if err := w.Write(header); err != nil {
			fatal("Failed to write CSV", err)
		}

		for _, e := range entries {
			if err := exportFeatures(w, e); err != nil {
				fatal("Failed to export "+e.Path, err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			fatal("Failed to write CSV", err)
		}
	},
}

func exportFeatures(w *csv.Writer, e fs.Entry) error {
	f, err := os.Open(e.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := dataset.NewReader(f, e.Cipher)
	skipped := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		sample, err := dataset.Extract(rec, featPrefix)
		if err != nil {
			skipped++
			continue
		}

		row := []string{string(sample.Label), strconv.Itoa(e.Length)}
		if featNormalize {
			for _, v := range sample.Features.Normalized() {
				row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
			}
		} else {
			for _, v := range sample.Features {
				row = append(row, strconv.Itoa(v))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	if skipped > 0 {
		slog.Warn("records skipped", "path", e.Path, "count", skipped, "prefix", featPrefix)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(featuresCmd)
	featuresCmd.Flags().StringVar(&featPattern, "pattern", "", "Glob of files to read, relative to root (default **/text_length_*.txt)")
	featuresCmd.Flags().IntVar(&featPrefix, "prefix", 100, "Ciphertext prefix the features are computed over")
	featuresCmd.Flags().BoolVar(&featNormalize, "normalize", false, "Emit relative frequencies instead of counts")
}
