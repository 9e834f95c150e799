package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/ciphergen"
	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/keygen"
)

var (
	keyCipher string
	keyDesc   string
	keyLabels bool
	keyFixed  bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file]",
	Short: "Encrypt a text with an explicit key",
	Long: `Encrypt a whole text (file or stdin) with an explicit key. The text is
normalized to lowercase letters first.

Keys use the dataset notation: a number for shift, a space separated 0-indexed
column order for columnar (1-indexed with --labels), letters for Vigenere, the 25
letter grid for Playfair and the row-major entries for Hill. --fixed uses the
reproducible keys (VIGENERECIPHER, columns 3 1 2 5 4).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key, err := resolveKey()
		if err != nil {
			fatal("Invalid key", err)
		}
		text, err := readText(args)
		if err != nil {
			fatal("Failed to read input", err)
		}
		ct, err := ciphergen.Encrypt(alphabet.Normalize(text), key)
		if err != nil {
			fatal("Encryption failed", err)
		}
		fmt.Println(ct)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file]",
	Short: "Decrypt a ciphertext with an explicit key",
	Long:  `Decrypt a ciphertext (file or stdin). Key flags are the same as for encrypt.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key, err := resolveKey()
		if err != nil {
			fatal("Invalid key", err)
		}
		text, err := readText(args)
		if err != nil {
			fatal("Failed to read input", err)
		}
		pt, err := ciphergen.Decrypt(alphabet.Normalize(text), key)
		if err != nil {
			fatal("Decryption failed", err)
		}
		fmt.Println(pt)
	},
}

// resolveKey builds the key from the shared key flags.
func resolveKey() (core.Key, error) {
	c, err := core.ParseCipher(keyCipher)
	if err != nil {
		return nil, err
	}

	if keyFixed {
		switch c {
		case core.Vigenere:
			return keygen.FixedVigenere(), nil
		case core.Columnar:
			return keygen.FixedColumnar(), nil
		default:
			return nil, fmt.Errorf("no fixed key for %s", c)
		}
	}
	if keyDesc == "" {
		return nil, errors.New("--key or --fixed is required")
	}
	if keyLabels {
		if c != core.Columnar {
			return nil, errors.New("--labels only applies to columnar keys")
		}
		var labels []int
		for _, f := range strings.Fields(keyDesc) {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a column label", core.ErrInvalidKey, f)
			}
			labels = append(labels, n)
		}
		return core.ColumnarKeyFromLabels(labels)
	}
	return ciphergen.ParseKey(c, keyDesc)
}

func readText(args []string) (string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func addKeyFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&keyCipher, "cipher", "", "Cipher (shift, columnar, vigenere, playfair, hill)")
	f.StringVarP(&keyDesc, "key", "k", "", "Key in dataset notation")
	f.BoolVar(&keyLabels, "labels", false, "Read a columnar key as 1-indexed labels")
	f.BoolVar(&keyFixed, "fixed", false, "Use the fixed single-run key (vigenere, columnar)")
	cmd.MarkFlagRequired("cipher")
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	addKeyFlags(encryptCmd)
	addKeyFlags(decryptCmd)
}
