package chp

import (
	"fmt"
	"strings"
)

// Reduce row-reduces the stabilizer block to echelon form, over the X
// columns first and then the Z columns of the remaining rows, using
// partial pivoting.  Each row swap is mirrored on the paired
// destabilizer so the symplectic pairing survives.  It returns the
// rank g; the state has exactly 2^g nonzero computational-basis
// amplitudes.  Reducing an already reduced tableau is a no-op.
func (t *Tableau) Reduce() int {
	i := t.n
	for j := 0; j < t.n; j++ {
		j5, m := j>>5, pw[j&31]
		k := i
		for ; k < 2*t.n; k++ {
			if t.x[k][j5]&m != 0 {
				break
			}
		}
		if k < 2*t.n {
			t.rowswap(i, k)
			t.rowswap(i-t.n, k-t.n)
			for k2 := i + 1; k2 < 2*t.n; k2++ {
				if t.x[k2][j5]&m != 0 {
					t.rowmult(k2, i)
					t.rowmult(i-t.n, k2-t.n)
				}
			}
			i++
		}
	}
	g := i - t.n

	for j := 0; j < t.n; j++ {
		j5, m := j>>5, pw[j&31]
		k := i
		for ; k < 2*t.n; k++ {
			if t.z[k][j5]&m != 0 {
				break
			}
		}
		if k < 2*t.n {
			t.rowswap(i, k)
			t.rowswap(i-t.n, k-t.n)
			for k2 := i + 1; k2 < 2*t.n; k2++ {
				if t.z[k2][j5]&m != 0 {
					t.rowmult(k2, i)
					t.rowmult(i-t.n, k2-t.n)
				}
			}
			i++
		}
	}
	return g
}

// seed loads the scratch row with a representative of one nonzero
// basis component, chosen consistent with the Z-only stabilizer rows
// left under the X pivots after reduction.
func (t *Tableau) seed(g int) {
	sc := 2 * t.n
	t.r[sc] = 0
	for j := 0; j < t.over32; j++ {
		t.x[sc][j] = 0
		t.z[sc][j] = 0
	}
	for i := 2*t.n - 1; i >= t.n+g; i-- {
		f := int(t.r[i])
		min := 0
		for j := t.n - 1; j >= 0; j-- {
			j5, m := j>>5, pw[j&31]
			if t.z[i][j5]&m != 0 {
				min = j
				if t.x[sc][j5]&m != 0 {
					f = (f + 2) % 4
				}
			}
		}
		if f == 2 {
			// flip the lowest Z column to satisfy row i's sign
			t.x[sc][min>>5] ^= pw[min&31]
		}
	}
}

// basisState appends the scratch row's basis component to sb as a
// sign prefix and a bitstring, e.g. " +|01>".  Each Y operator in the
// row contributes a factor of i to the printed phase.
func (t *Tableau) basisState(sb *strings.Builder) {
	sc := 2 * t.n
	e := int(t.r[sc])
	for j := 0; j < t.n; j++ {
		j5, m := j>>5, pw[j&31]
		if t.x[sc][j5]&m != 0 && t.z[sc][j5]&m != 0 {
			e = (e + 1) % 4
		}
	}
	switch e {
	case 0:
		sb.WriteString(" +|")
	case 1:
		sb.WriteString("+i|")
	case 2:
		sb.WriteString(" -|")
	case 3:
		sb.WriteString("-i|")
	}
	for j := 0; j < t.n; j++ {
		j5, m := j>>5, pw[j&31]
		if t.x[sc][j5]&m != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteString(">\n")
}

// maxKetRank bounds basis enumeration: past this the 2^g components
// overflow the 32-bit Gray-code counter, and printing billions of
// lines is useless anyway.
const maxKetRank = 30

// Ket returns the state in ket notation, one line per nonzero basis
// component, 2^g lines in all.  The walk multiplies pivot stabilizers
// into the scratch row in Gray-code order so each step is a single
// row multiply.  Ket may be called repeatedly and returns the same
// rendering each time.  It fails only when the rank exceeds
// maxKetRank.
func (t *Tableau) Ket() (string, error) {
	g := t.Reduce()
	if g > maxKetRank {
		return "", fmt.Errorf("chp: rank %d state has too many nonzero basis components to enumerate", g)
	}

	var sb strings.Builder
	t.seed(g)
	t.basisState(&sb)
	for c := uint32(0); c < pw[g]-1; c++ {
		c2 := c ^ (c + 1)
		for i := 0; i < g; i++ {
			if c2&pw[i] != 0 {
				t.rowmult(2*t.n, t.n+i)
			}
		}
		t.basisState(&sb)
	}
	return sb.String(), nil
}
