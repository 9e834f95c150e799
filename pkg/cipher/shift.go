package cipher

import (
	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
)

// ShiftEngine rotates every letter by a fixed amount.
type ShiftEngine struct{}

func (ShiftEngine) Cipher() core.Cipher { return core.Shift }

func (e ShiftEngine) Encrypt(plaintext string, key core.Key) (string, error) {
	k, err := keyAs[core.ShiftKey](core.Shift, key)
	if err != nil {
		return "", err
	}
	return rotate(plaintext, int(k))
}

func (e ShiftEngine) Decrypt(ciphertext string, key core.Key) (string, error) {
	k, err := keyAs[core.ShiftKey](core.Shift, key)
	if err != nil {
		return "", err
	}
	return rotate(ciphertext, -int(k))
}

func rotate(s string, by int) (string, error) {
	if err := checkText(s); err != nil {
		return "", err
	}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = alphabet.FromIndex(alphabet.Index(s[i]) + by)
	}
	return string(out), nil
}
