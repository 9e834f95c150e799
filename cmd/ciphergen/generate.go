package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/ciphergen"
	lcadapter "github.com/aretw0/ciphergen/pkg/adapters/lifecycle"
	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

var (
	genConfig        string
	genCorpus        string
	genOutput        string
	genSeed          uint64
	genWorkers       int
	genIterations    int
	genLengths       []int
	genCiphers       []string
	genMaxOffset     int
	genMaxRetries    int
	genFlushEvery    int
	genFixedVigenere string
	genProgress      bool
	genUnsafe        bool
	genLockTimeout   time.Duration
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the cipher datasets",
	Long: `Generate one dataset file per (cipher, length) under the output directory.

Settings are read from --config, or from the nearest ciphergen.yaml found walking
up from the working directory. Flags override file values.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signalContext()
		defer stop()

		cfg, err := loadRunConfig(genConfig)
		if err != nil {
			fatal("Failed to load config", err)
		}
		opts, err := cfg.Options()
		if err != nil {
			fatal("Invalid config", err)
		}

		flags := cmd.Flags()
		if flags.Changed("corpus") {
			cfg.Corpus = genCorpus
		}
		if flags.Changed("output") || cfg.Output == "" {
			cfg.Output = genOutput
		}
		if cfg.Corpus == "" {
			fatal("Missing corpus", errors.New("set --corpus or corpus: in the config file"))
		}
		if flags.Changed("seed") {
			opts = append(opts, ciphergen.WithSeed(genSeed))
		}
		if flags.Changed("workers") {
			opts = append(opts, ciphergen.WithWorkers(genWorkers))
		}
		if flags.Changed("iterations") {
			opts = append(opts, ciphergen.WithIterations(genIterations))
		}
		if flags.Changed("lengths") {
			opts = append(opts, ciphergen.WithLengths(genLengths...))
		}
		if flags.Changed("ciphers") {
			ciphers, err := ciphergen.ParseCiphers(genCiphers)
			if err != nil {
				fatal("Invalid --ciphers", err)
			}
			opts = append(opts, ciphergen.WithCiphers(ciphers...))
		}
		if flags.Changed("max-offset") {
			opts = append(opts, ciphergen.WithMaxOffset(genMaxOffset))
		}
		if flags.Changed("max-retries") {
			opts = append(opts, ciphergen.WithMaxRetries(genMaxRetries))
		}
		if flags.Changed("flush-every") {
			opts = append(opts, ciphergen.WithFlushEvery(genFlushEvery))
		}
		if flags.Changed("fixed-vigenere") {
			if _, err := core.NewVigenereKey(genFixedVigenere); err != nil {
				fatal("Invalid --fixed-vigenere", err)
			}
			opts = append(opts, ciphergen.WithKeygen(keygen.WithFixedVigenere(genFixedVigenere)))
		}
		if flags.Changed("lock-timeout") {
			opts = append(opts, ciphergen.WithLockTimeout(genLockTimeout))
		}
		if genUnsafe {
			opts = append(opts, ciphergen.WithDevSafety(false))
		}
		opts = append(opts, ciphergen.WithLogger(slog.Default()))

		var (
			progress chan core.Progress
			printed  sync.WaitGroup
		)
		if genProgress {
			progress = make(chan core.Progress, 64)
			opts = append(opts, ciphergen.WithProgress(progress))

			src := lcadapter.NewSource(progress)
			if err := src.Start(ctx); err != nil {
				fatal("Failed to start progress source", err)
			}
			printed.Add(1)
			go func() {
				defer printed.Done()
				for e := range src.Events() {
					fmt.Fprintln(os.Stderr, e.String())
				}
			}()
		}

		runner, err := ciphergen.New(cfg.Corpus, cfg.Output, opts...)
		if err != nil {
			fatal("Failed to initialize run", err)
		}

		report, runErr := runner.Run(ctx)
		if progress != nil {
			close(progress)
			printed.Wait()
		}

		fmt.Printf("run %s: %d records in %d files under %s (%d failed)\n",
			report.RunID, report.Records(), len(report.Tasks), runner.Output, len(report.Failed()))
		if runErr != nil {
			fatal("Generation finished with failures", runErr)
		}
	},
}

// loadRunConfig reads the explicit config file, or the nearest ciphergen.yaml.
// No file at all is not an error.
func loadRunConfig(path string) (ciphergen.Config, error) {
	if path != "" {
		return ciphergen.LoadConfig(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return ciphergen.Config{}, err
	}
	found, err := ciphergen.FindConfig(wd)
	if errors.Is(err, ciphergen.ErrConfigNotFound) {
		return ciphergen.Config{}, nil
	}
	if err != nil {
		return ciphergen.Config{}, err
	}
	slog.Debug("using config file", "path", found)
	return ciphergen.LoadConfig(found)
}

func init() {
	rootCmd.AddCommand(generateCmd)
	f := generateCmd.Flags()
	f.StringVarP(&genConfig, "config", "c", "", "Run file (default: nearest ciphergen.yaml)")
	f.StringVar(&genCorpus, "corpus", "", "Plaintext corpus file")
	f.StringVarP(&genOutput, "output", "o", "data", "Dataset root directory")
	f.Uint64Var(&genSeed, "seed", 0, "Seed for a reproducible run (default: random)")
	f.IntVarP(&genWorkers, "workers", "w", 0, "Worker pool size (default: number of CPUs)")
	f.IntVarP(&genIterations, "iterations", "n", 0, "Records per dataset file (default 10000)")
	f.IntSliceVar(&genLengths, "lengths", nil, "Plaintext lengths (default 100,200,300,500,1000)")
	f.StringSliceVar(&genCiphers, "ciphers", nil, "Ciphers to generate (default: all)")
	f.IntVar(&genMaxOffset, "max-offset", 0, "Upper bound of the corpus line offset (default 45000)")
	f.IntVar(&genMaxRetries, "max-retries", 10, "Retries of a failed iteration")
	f.IntVar(&genFlushEvery, "flush-every", 0, "Flush dataset files every n records")
	f.StringVar(&genFixedVigenere, "fixed-vigenere", "", "Use this literal key for every Vigenere record")
	f.BoolVar(&genProgress, "progress", false, "Print progress events to stderr")
	f.DurationVar(&genLockTimeout, "lock-timeout", 0, "Give up when another run holds the output lock this long (default: wait)")
	f.BoolVar(&genUnsafe, "unsafe", false, "Write to the real output path even under go run")
}
