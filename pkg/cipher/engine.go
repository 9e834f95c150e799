// Package cipher implements the five classical encryption transforms over the
// 26-letter lowercase alphabet.
//
// Engines are stateless and safe for concurrent use. Every engine expects
// plaintext already reduced by package alphabet and rejects anything else.
package cipher

import (
	"errors"
	"fmt"

	"github.com/aretw0/ciphergen/pkg/alphabet"
	"github.com/aretw0/ciphergen/pkg/core"
)

// ErrNotNormalized is returned for input containing bytes outside a..z.
var ErrNotNormalized = errors.New("text is not normalized to a..z")

// Engine encrypts and decrypts with one cipher.
type Engine interface {
	Cipher() core.Cipher
	Encrypt(plaintext string, key core.Key) (string, error)
	Decrypt(ciphertext string, key core.Key) (string, error)
}

// For returns the engine for c.
func For(c core.Cipher) (Engine, error) {
	switch c {
	case core.Shift:
		return ShiftEngine{}, nil
	case core.Columnar:
		return ColumnarEngine{}, nil
	case core.Vigenere:
		return VigenereEngine{}, nil
	case core.Playfair:
		return PlayfairEngine{}, nil
	case core.Hill:
		return HillEngine{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownCipher, string(c))
	}
}

// strictEncrypter is implemented by engines that pad short input. The strict
// form emits only letters derived from real plaintext.
type strictEncrypter interface {
	encryptStrict(plaintext string, key core.Key) (string, error)
}

// SampleLength is the number of plaintext letters to sample for n ciphertext
// letters of c. Playfair consumes letters in pairs, so an odd n needs one more.
func SampleLength(c core.Cipher, n int) int {
	if c == core.Playfair {
		return n + n%2
	}
	return n
}

// EncryptN encrypts plaintext and returns exactly the first n ciphertext
// letters. It fails with core.ErrInsufficientPlaintext when the engine
// produced fewer. Padding never stands in for missing plaintext here: an
// unpaired Playfair tail is dropped rather than filled.
func EncryptN(e Engine, plaintext string, key core.Key, n int) (string, error) {
	var (
		ct  string
		err error
	)
	if s, ok := e.(strictEncrypter); ok {
		ct, err = s.encryptStrict(plaintext, key)
	} else {
		ct, err = e.Encrypt(plaintext, key)
	}
	if err != nil {
		return "", err
	}
	if len(ct) < n {
		return "", fmt.Errorf("%w: %s produced %d of %d letters from %d plaintext letters",
			core.ErrInsufficientPlaintext, e.Cipher(), len(ct), n, len(plaintext))
	}
	return ct[:n], nil
}

// checkText rejects text that was not normalized.
func checkText(s string) error {
	if !alphabet.IsLower(s) {
		return ErrNotNormalized
	}
	return nil
}

// keyAs asserts the concrete key type and validates it.
func keyAs[K core.Key](c core.Cipher, key core.Key) (K, error) {
	var zero K
	if key == nil {
		return zero, fmt.Errorf("%w: nil key for %s", core.ErrInvalidKey, c)
	}
	k, ok := key.(K)
	if !ok {
		return zero, fmt.Errorf("%w: %s key passed to %s engine", core.ErrInvalidKey, key.Cipher(), c)
	}
	if err := k.Validate(); err != nil {
		return zero, err
	}
	return k, nil
}
