package cipher

import (
	"github.com/aretw0/ciphergen/pkg/core"
)

// ColumnarEngine writes the text round-robin into C columns, reorders the
// columns by the key and reads them back row by row. A trailing partial row is
// dropped, so the output has C*floor(len/C) letters.
type ColumnarEngine struct{}

func (ColumnarEngine) Cipher() core.Cipher { return core.Columnar }

func (e ColumnarEngine) Encrypt(plaintext string, key core.Key) (string, error) {
	k, err := keyAs[core.ColumnarKey](core.Columnar, key)
	if err != nil {
		return "", err
	}
	if err := checkText(plaintext); err != nil {
		return "", err
	}
	// Column j holds plaintext[j], plaintext[j+C], ...; row i of the reordered
	// grid is therefore plaintext[i*C+Order[j]] for j in [0,C).
	c := k.Columns()
	rows := len(plaintext) / c
	out := make([]byte, rows*c)
	for i := 0; i < rows; i++ {
		for j, src := range k.Order {
			out[i*c+j] = plaintext[i*c+src]
		}
	}
	return string(out), nil
}

func (e ColumnarEngine) Decrypt(ciphertext string, key core.Key) (string, error) {
	k, err := keyAs[core.ColumnarKey](core.Columnar, key)
	if err != nil {
		return "", err
	}
	if err := checkText(ciphertext); err != nil {
		return "", err
	}
	c := k.Columns()
	rows := len(ciphertext) / c
	out := make([]byte, rows*c)
	for i := 0; i < rows; i++ {
		for j, src := range k.Order {
			out[i*c+src] = ciphertext[i*c+j]
		}
	}
	return string(out), nil
}
