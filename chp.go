// package chp implements the tableau representation of stabilizer
// states (Aaronson & Gottesman, "Improved Simulation of Stabilizer
// Circuits") which supports:
//  1. Clifford gates (Hadamard, Phase, CNOT) in O(n) time per gate
//  2. single-qubit measurement in O(n^2) worst case time
//  3. ket-form display of the state via Gaussian elimination
//
// A state on n qubits is stored as 2n Pauli-string generators (n
// destabilizers followed by n stabilizers) plus one scratch row, bit
// packed into two word matrices.  All methods mutate the tableau in
// place; a Tableau must not be shared between goroutines.
//
// Qubit indices out of [0, n), or a CNOT with equal control and
// target, are programmer errors and panic rather than corrupt the
// tableau.
package chp

import (
	"fmt"
	"strings"
)

// wordBits is the number of logical bits addressed per storage word.
const wordBits = 32

// pw holds the 32 single-bit masks used for word addressing
// (pw[i] == 1 << i).
var pw [wordBits]uint32

func init() {
	for i := range pw {
		pw[i] = 1 << uint(i)
	}
}

// Tableau is a stabilizer state on n qubits.  Rows 0..n-1 of the bit
// matrices are destabilizer generators, rows n..2n-1 are stabilizer
// generators, and row 2n is scratch space used by row swaps,
// determinate measurement, and basis enumeration.  Each row i encodes
// a Pauli string, two bits per qubit: (x, z) of (0,0)=I (1,0)=X
// (1,1)=Y (0,1)=Z.  r[i] is the row's phase as an exponent of the
// imaginary unit; committed generator rows only ever hold 0 (+1) or
// 2 (-1).
type Tableau struct {
	n       int
	over32  int        // words per row, (n >> 5) + 1
	x       [][]uint32 // (2n+1) x over32 bit matrix
	z       [][]uint32 // (2n+1) x over32 bit matrix
	r       []uint8    // phase exponents, mod 4
	randBit func() uint8
}

// New builds the all-zero computational basis state |0...0> on n
// qubits.  n may be zero, which yields a degenerate but valid tableau
// that admits no gates or measurements.
func New(n int) *Tableau {
	return NewWithConfig(Config{Qubits: n})
}

// NewWithConfig builds the all-zero basis state described by c,
// filling unset fields from DefaultConfig.
func NewWithConfig(c Config) *Tableau {
	if c.Qubits < 0 {
		panic(fmt.Sprintf("chp: negative qubit count %d", c.Qubits))
	}
	if c.RandBit == nil {
		c.RandBit = DefaultConfig.RandBit
	}

	n := c.Qubits
	rows := 2*n + 1
	t := &Tableau{
		n:       n,
		over32:  (n >> 5) + 1,
		x:       make([][]uint32, rows),
		z:       make([][]uint32, rows),
		r:       make([]uint8, rows),
		randBit: c.RandBit,
	}
	for i := 0; i < rows; i++ {
		t.x[i] = make([]uint32, t.over32)
		t.z[i] = make([]uint32, t.over32)
	}
	// destabilizer i is X_i, stabilizer i is Z_i
	for i := 0; i < n; i++ {
		t.x[i][i>>5] = pw[i&31]
		t.z[i+n][i>>5] = pw[i&31]
	}
	return t
}

// N reports the number of qubits.
func (t *Tableau) N() int {
	return t.n
}

func (t *Tableau) checkQubit(q int) {
	if q < 0 || q >= t.n {
		panic(fmt.Sprintf("chp: qubit %d out of range for %d-qubit tableau", q, t.n))
	}
}

// rowcopy sets row i to row k, bits and phase.
func (t *Tableau) rowcopy(i, k int) {
	for j := 0; j < t.over32; j++ {
		t.x[i][j] = t.x[k][j]
		t.z[i][j] = t.z[k][j]
	}
	t.r[i] = t.r[k]
}

// rowswap exchanges rows i and k through the scratch row.
func (t *Tableau) rowswap(i, k int) {
	t.rowcopy(2*t.n, k)
	t.rowcopy(k, i)
	t.rowcopy(i, 2*t.n)
}

// rowset zeroes row i and sets it to the bth canonical generator:
// X_b when b < n, Z_{b-n} otherwise.
func (t *Tableau) rowset(i, b int) {
	for j := 0; j < t.over32; j++ {
		t.x[i][j] = 0
		t.z[i][j] = 0
	}
	t.r[i] = 0
	if b < t.n {
		t.x[i][b>>5] = pw[b&31]
	} else {
		b -= t.n
		t.z[i][b>>5] = pw[b&31]
	}
}

// clifford returns the phase exponent, in [0, 4), of the product of
// row k into row i.  Each qubit position contributes +1 or -1
// according to the single-qubit Pauli products (XY=iZ, YZ=iX, ZX=iY
// and their -i reverses).
func (t *Tableau) clifford(i, k int) uint8 {
	e := 0
	for j := 0; j < t.over32; j++ {
		xi, zi := t.x[i][j], t.z[i][j]
		xk, zk := t.x[k][j], t.z[k][j]
		if xk|zk == 0 || xi|zi == 0 {
			continue // identity word on either side
		}
		for l := 0; l < wordBits; l++ {
			m := pw[l]
			switch {
			case xk&m != 0 && zk&m == 0: // X
				if xi&m != 0 && zi&m != 0 {
					e++ // XY = iZ
				}
				if xi&m == 0 && zi&m != 0 {
					e-- // XZ = -iY
				}
			case xk&m != 0 && zk&m != 0: // Y
				if xi&m == 0 && zi&m != 0 {
					e++ // YZ = iX
				}
				if xi&m != 0 && zi&m == 0 {
					e-- // YX = -iZ
				}
			case zk&m != 0: // Z
				if xi&m != 0 && zi&m == 0 {
					e++ // ZX = iY
				}
				if xi&m != 0 && zi&m != 0 {
					e-- // ZY = -iX
				}
			}
		}
	}
	e = (e + int(t.r[i]) + int(t.r[k])) % 4
	if e < 0 {
		e += 4
	}
	return uint8(e)
}

// rowmult multiplies row k into row i under Pauli multiplication.
// The phase must be resolved before the bits are XORed.
func (t *Tableau) rowmult(i, k int) {
	t.r[i] = t.clifford(i, k)
	for j := 0; j < t.over32; j++ {
		t.x[i][j] ^= t.x[k][j]
		t.z[i][j] ^= t.z[k][j]
	}
}

// String renders the generator rows, one line per generator: a sign
// character followed by one Pauli letter per qubit, the destabilizer
// block first, then a dashed separator, then the stabilizer block.
func (t *Tableau) String() string {
	var sb strings.Builder
	for i := 0; i < 2*t.n; i++ {
		if i == t.n {
			sb.WriteString(strings.Repeat("-", t.n+1))
			sb.WriteByte('\n')
		}
		if t.r[i] == 2 {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('+')
		}
		for j := 0; j < t.n; j++ {
			j5, m := j>>5, pw[j&31]
			xb := t.x[i][j5]&m != 0
			zb := t.z[i][j5]&m != 0
			switch {
			case !xb && !zb:
				sb.WriteByte('I')
			case xb && !zb:
				sb.WriteByte('X')
			case xb && zb:
				sb.WriteByte('Y')
			default:
				sb.WriteByte('Z')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
