package chp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rows captures a deep copy of the tableau's bit matrices and phases
// for before/after comparisons.
type rows struct {
	X, Z [][]uint32
	R    []uint8
}

func capture(t *Tableau, includeScratch bool) rows {
	n := 2 * t.n
	if includeScratch {
		n++
	}
	var s rows
	for i := 0; i < n; i++ {
		s.X = append(s.X, append([]uint32(nil), t.x[i]...))
		s.Z = append(s.Z, append([]uint32(nil), t.z[i]...))
		s.R = append(s.R, t.r[i])
	}
	return s
}

// randomTableau drives a fixed-seed random Clifford circuit so the
// algebraic properties get exercised on states well away from |0...0>.
func randomTableau(n, gates int, seed int64) *Tableau {
	rng := rand.New(rand.NewSource(seed))
	t := NewWithConfig(Config{
		Qubits:  n,
		RandBit: func() uint8 { return uint8(rng.Intn(2)) },
	})
	for i := 0; i < gates; i++ {
		switch rng.Intn(3) {
		case 0:
			t.Hadamard(rng.Intn(n))
		case 1:
			t.Phase(rng.Intn(n))
		default:
			a := rng.Intn(n)
			b := rng.Intn(n - 1)
			if b >= a {
				b++
			}
			t.CNOT(a, b)
		}
	}
	return t
}

func TestNewInitialState(t *testing.T) {
	for _, n := range []int{1, 2, 5, 33, 64} {
		tab := New(n)
		require.Equal(t, n, tab.N())
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				j5, m := j>>5, pw[j&31]
				assert.Equal(t, i == j, tab.x[i][j5]&m != 0, "n=%d destabilizer %d X bit %d", n, i, j)
				assert.Equal(t, uint32(0), tab.z[i][j5]&m, "n=%d destabilizer %d Z bit %d", n, i, j)
				assert.Equal(t, uint32(0), tab.x[i+n][j5]&m, "n=%d stabilizer %d X bit %d", n, i, j)
				assert.Equal(t, i == j, tab.z[i+n][j5]&m != 0, "n=%d stabilizer %d Z bit %d", n, i, j)
			}
		}
		for i := 0; i < 2*n+1; i++ {
			assert.Equal(t, uint8(0), tab.r[i])
		}
	}
}

func TestZeroQubits(t *testing.T) {
	tab := New(0)
	assert.Equal(t, 0, tab.N())
	assert.Equal(t, "", tab.String())
	assert.Equal(t, 0, tab.Reduce())
	ket, err := tab.Ket()
	require.NoError(t, err)
	assert.Equal(t, " +|>\n", ket)
}

func TestNegativeQubitsPanics(t *testing.T) {
	assert.Panics(t, func() { New(-1) })
}

func TestQubitRangePanics(t *testing.T) {
	tab := New(2)
	assert.Panics(t, func() { tab.Hadamard(2) })
	assert.Panics(t, func() { tab.Phase(-1) })
	assert.Panics(t, func() { tab.CNOT(0, 2) })
	assert.Panics(t, func() { tab.CNOT(1, 1) })
	assert.Panics(t, func() { tab.Measure(7) })
}

func TestStringRendering(t *testing.T) {
	tab := New(2)
	assert.Equal(t, "+XI\n+IX\n---\n+ZI\n+IZ\n", tab.String())

	// H swaps the X and Z roles on qubit 0
	tab.Hadamard(0)
	assert.Equal(t, "+ZI\n+IX\n---\n+XI\n+IZ\n", tab.String())

	// S turns the stabilizer X into Y
	tab.Phase(0)
	assert.Equal(t, "+ZI\n+IX\n---\n+YI\n+IZ\n", tab.String())

	// two more S flip the sign of the Y stabilizer
	tab.Phase(0)
	tab.Phase(0)
	assert.Equal(t, "+ZI\n+IX\n---\n-YI\n+IZ\n", tab.String())
}

func TestHadamardInvolution(t *testing.T) {
	const n = 5
	for seed := int64(0); seed < 10; seed++ {
		tab := randomTableau(n, 40, seed)
		before := capture(tab, true)
		for q := 0; q < n; q++ {
			tab.Hadamard(q)
			tab.Hadamard(q)
		}
		assert.Equal(t, before, capture(tab, true), "seed %d", seed)
	}
}

func TestPhaseOrderFour(t *testing.T) {
	const n = 5
	for seed := int64(0); seed < 10; seed++ {
		tab := randomTableau(n, 40, seed)
		before := capture(tab, true)
		for q := 0; q < n; q++ {
			for i := 0; i < 4; i++ {
				tab.Phase(q)
			}
		}
		assert.Equal(t, before, capture(tab, true), "seed %d", seed)
	}
}

func TestCNOTInvolution(t *testing.T) {
	const n = 5
	for seed := int64(0); seed < 10; seed++ {
		tab := randomTableau(n, 40, seed)
		before := capture(tab, true)
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if a == b {
					continue
				}
				tab.CNOT(a, b)
				tab.CNOT(a, b)
			}
		}
		assert.Equal(t, before, capture(tab, true), "seed %d", seed)
	}
}

// HZH = X: conjugating Phase^2 by Hadamards flips a qubit.
func TestHadamardPhaseComposition(t *testing.T) {
	tab := New(1)
	tab.Hadamard(0)
	tab.Phase(0)
	tab.Phase(0)
	tab.Hadamard(0)
	// state is now |1>: stabilizer -Z, destabilizer X
	assert.Equal(t, "+X\n--\n-Z\n", tab.String())
}

func TestRowMultAcrossWordBoundary(t *testing.T) {
	// qubits 31 and 32 land in different storage words
	tab := New(33)
	tab.Hadamard(31)
	tab.CNOT(31, 32)
	before := capture(tab, true)
	tab.CNOT(31, 32)
	tab.CNOT(31, 32)
	assert.Equal(t, before, capture(tab, true))

	m := tab.Measure(32)
	assert.True(t, m.Random)
	m2 := tab.Measure(31)
	assert.False(t, m2.Random)
	assert.Equal(t, m.Bit, m2.Bit)
}

func BenchmarkCNOT(b *testing.B) {
	tab := New(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tab.CNOT(i%1023, 1023)
	}
}

func BenchmarkMeasure(b *testing.B) {
	tab := randomTableau(256, 4096, 77)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tab.Hadamard(i % 256)
		tab.Measure(i % 256)
	}
}
