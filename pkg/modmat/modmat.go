// Package modmat provides exact integer matrix arithmetic over Z/p (p prime)
// and over Z/26, the ring the Hill cipher works in.
//
// Z/26 is not a field, so determinants and inverses mod 26 are computed
// separately over the fields GF(2) and GF(13) and recombined with the
// Chinese Remainder Theorem. Nothing here touches floating point: a 10x10
// determinant with entries in [0,25] overflows int64 and loses precision in
// float64, which makes a rounded floating determinant unusable as a validity
// test.
package modmat

import (
	"errors"
	"fmt"
)

// Modulus is the alphabet size the Hill cipher works modulo.
const Modulus = 26

// Sentinel errors.
var (
	ErrNotSquare = errors.New("modmat: matrix is not square")
	ErrSingular  = errors.New("modmat: matrix is singular")
)

// Mod returns a mod m in [0, m).
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// InverseMod returns x with a*x ≡ 1 (mod m), or ok=false when gcd(a, m) != 1.
// Extended Euclid; O(log m).
func InverseMod(a, m int) (x int, ok bool) {
	a = Mod(a, m)
	oldR, r := a, m
	oldS, s := 1, 0
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, false
	}
	return Mod(oldS, m), true
}

// GCD returns the greatest common divisor of |a| and |b|.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// reduce copies m with every entry taken mod p.
func reduce(m [][]int, p int) ([][]int, error) {
	n := len(m)
	out := make([][]int, n)
	for i, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d entries for %d rows: %w", i, len(row), n, ErrNotSquare)
		}
		out[i] = make([]int, n)
		for j, v := range row {
			out[i][j] = Mod(v, p)
		}
	}
	return out, nil
}

// DetMod returns det(m) mod p for a prime p, by Gaussian elimination over GF(p).
// Non-square input yields 0.
// Time Complexity: O(n³); Memory: O(n²).
func DetMod(m [][]int, p int) int {
	a, err := reduce(m, p)
	if err != nil {
		return 0
	}
	n := len(a)
	det := 1
	for col := 0; col < n; col++ {
		// Stage 1: find a non-zero pivot in this column
		pivot := -1
		for r := col; r < n; r++ {
			if a[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return 0
		}
		if pivot != col {
			a[pivot], a[col] = a[col], a[pivot]
			det = p - det // row swap flips the sign
		}
		det = det * a[col][col] % p

		// Stage 2: eliminate below the pivot
		inv, _ := InverseMod(a[col][col], p)
		for r := col + 1; r < n; r++ {
			if a[r][col] == 0 {
				continue
			}
			f := a[r][col] * inv % p
			for c := col; c < n; c++ {
				a[r][c] = Mod(a[r][c]-f*a[col][c], p)
			}
		}
	}
	return Mod(det, p)
}

// crt26 combines residues mod 2 and mod 13 into the residue mod 26.
func crt26(r2, r13 int) int {
	// x = r13 + 13t, and 13 ≡ 1 (mod 2) so t ≡ r2 - r13 (mod 2).
	return r13 + 13*Mod(r2-r13, 2)
}

// Det26 returns det(m) mod 26.
func Det26(m [][]int) int {
	return crt26(DetMod(m, 2), DetMod(m, 13))
}

// Invertible26 reports whether m is invertible over Z/26, i.e. det(m) mod 26 is
// non-zero and coprime with 26.
func Invertible26(m [][]int) bool {
	if _, err := reduce(m, Modulus); err != nil || len(m) == 0 {
		return false
	}
	return DetMod(m, 2) != 0 && DetMod(m, 13) != 0
}

// InversePrime returns the inverse of m over GF(p) by Gauss-Jordan elimination.
// Time Complexity: O(n³); Memory: O(n²).
func InversePrime(m [][]int, p int) ([][]int, error) {
	a, err := reduce(m, p)
	if err != nil {
		return nil, err
	}
	n := len(a)
	// Stage 1: augment with the identity
	for i := range a {
		row := make([]int, 2*n)
		copy(row, a[i])
		row[n+i] = 1
		a[i] = row
	}

	// Stage 2: reduce to row echelon form with unit pivots
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if a[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return nil, fmt.Errorf("column %d mod %d: %w", col, p, ErrSingular)
		}
		a[pivot], a[col] = a[col], a[pivot]

		inv, _ := InverseMod(a[col][col], p)
		for c := 0; c < 2*n; c++ {
			a[col][c] = a[col][c] * inv % p
		}
		for r := 0; r < n; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := 0; c < 2*n; c++ {
				a[r][c] = Mod(a[r][c]-f*a[col][c], p)
			}
		}
	}

	// Stage 3: extract the right half
	out := make([][]int, n)
	for i := range a {
		out[i] = append([]int(nil), a[i][n:]...)
	}
	return out, nil
}

// Inverse26 returns the inverse of m over Z/26.
func Inverse26(m [][]int) ([][]int, error) {
	inv2, err := InversePrime(m, 2)
	if err != nil {
		return nil, err
	}
	inv13, err := InversePrime(m, 13)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(m))
	for i := range out {
		out[i] = make([]int, len(m))
		for j := range out[i] {
			out[i][j] = crt26(inv2[i][j], inv13[i][j])
		}
	}
	return out, nil
}

// MulVec26 returns (m · v) mod 26. len(v) must equal the column count of m.
func MulVec26(m [][]int, v []int) []int {
	out := make([]int, len(m))
	for i, row := range m {
		sum := 0
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = Mod(sum, Modulus)
	}
	return out
}
