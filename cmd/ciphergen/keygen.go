package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

var (
	kgCipher string
	kgLength int
	kgCount  int
	kgSeed   uint64
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print random keys in dataset notation",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := core.ParseCipher(kgCipher)
		if err != nil {
			fatal("Invalid --cipher", err)
		}
		seed := kgSeed
		if !cmd.Flags().Changed("seed") {
			seed = rand.Uint64()
		}
		g := keygen.New(seed)
		for i := 0; i < kgCount; i++ {
			k, err := g.For(c, kgLength)
			if err != nil {
				fatal("Key generation failed", err)
			}
			fmt.Println(k.Describe())
		}
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVar(&kgCipher, "cipher", "", "Cipher (shift, columnar, vigenere, playfair, hill)")
	keygenCmd.Flags().IntVarP(&kgLength, "length", "l", 100, "Text length the key must fit (columnar, hill)")
	keygenCmd.Flags().IntVarP(&kgCount, "count", "n", 1, "Number of keys")
	keygenCmd.Flags().Uint64Var(&kgSeed, "seed", 0, "Seed (default: random)")
	keygenCmd.MarkFlagRequired("cipher")
}
