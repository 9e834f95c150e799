package cipher

import (
	"fmt"

	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
	"github.com/aretw0/ciphergen/pkg/modmat"
)

// HillEngine multiplies K-letter blocks by the key matrix mod 26. The text
// length must be a multiple of K; a partial block is an error, not padding.
type HillEngine struct{}

func (HillEngine) Cipher() core.Cipher { return core.Hill }

func (e HillEngine) Encrypt(plaintext string, key core.Key) (string, error) {
	k, err := keyAs[core.HillKey](core.Hill, key)
	if err != nil {
		return "", err
	}
	return blocks(plaintext, k.Size, k.M)
}

func (e HillEngine) Decrypt(ciphertext string, key core.Key) (string, error) {
	k, err := keyAs[core.HillKey](core.Hill, key)
	if err != nil {
		return "", err
	}
	inv, err := modmat.Inverse26(k.M)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrInvalidKey, err)
	}
	return blocks(ciphertext, k.Size, inv)
}

func blocks(s string, size int, m [][]int) (string, error) {
	if err := checkText(s); err != nil {
		return "", err
	}
	if rem := len(s) % size; rem != 0 {
		return "", fmt.Errorf("%w: %d letters leave a partial block of %d (block size %d)",
			core.ErrInsufficientPlaintext, len(s), rem, size)
	}
	out := make([]byte, len(s))
	vec := make([]int, size)
	for start := 0; start < len(s); start += size {
		for i := range vec {
			vec[i] = alphabet.Index(s[start+i])
		}
		for i, v := range modmat.MulVec26(m, vec) {
			out[start+i] = alphabet.FromIndex(v)
		}
	}
	return string(out), nil
}
