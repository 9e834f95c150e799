package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/ciphergen"
	"github.com/aretw0/ciphergen/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Records per cipher")
	length := flag.Int("length", 500, "Plaintext length")
	workers := flag.Int("workers", 0, "Worker pool size (0 = number of CPUs)")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "ciphergen_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	// A synthetic corpus: enough lines that every offset yields a full sample.
	corpusPath := filepath.Join(benchDir, "corpus.txt")
	line := "It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.\n"
	startGen := time.Now()
	if err := os.WriteFile(corpusPath, []byte(strings.Repeat(line, 5000)), 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Corpus generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.TODO()

	// 2. One run per cipher, sequentially, to compare engines
	for _, c := range core.AllCiphers() {
		runner, err := ciphergen.New(corpusPath, filepath.Join(benchDir, "data"),
			ciphergen.WithLogger(logger),
			ciphergen.WithSeed(1),
			ciphergen.WithWorkers(*workers),
			ciphergen.WithIterations(*count),
			ciphergen.WithLengths(*length),
			ciphergen.WithCiphers(c),
			ciphergen.WithMaxOffset(4990),
			ciphergen.WithManifest(false),
		)
		if err != nil {
			panic(err)
		}

		start := time.Now()
		report, err := runner.Run(ctx)
		duration := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s failed after %v: %v\n", c, duration, err)
			continue
		}
		rate := float64(report.Records()) / duration.Seconds()
		fmt.Printf("%-10s %6d records in %v (%.0f records/s)\n", c, report.Records(), duration, rate)
	}
}
