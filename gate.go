package chp

import "fmt"

// Gate is a Clifford gate descriptor.  Applying a gate conjugates
// every generator row of the tableau in O(1) work per row.
type Gate interface {
	Apply(t *Tableau)
}

// HadamardGate applies a Hadamard to Target.
type HadamardGate struct {
	Target int
}

// PhaseGate applies the S gate to Target.
type PhaseGate struct {
	Target int
}

// CNotGate applies a controlled NOT: Target is flipped whenever
// Control is |1>.
type CNotGate struct {
	Control int
	Target  int
}

func (g HadamardGate) Apply(t *Tableau) { t.Hadamard(g.Target) }
func (g PhaseGate) Apply(t *Tableau)    { t.Phase(g.Target) }
func (g CNotGate) Apply(t *Tableau)     { t.CNOT(g.Control, g.Target) }

// Hadamard applies H to qubit target: every row's X and Z bits at
// target trade places, and a row holding Y there picks up a sign.
func (t *Tableau) Hadamard(target int) {
	t.checkQubit(target)
	b5, m := target>>5, pw[target&31]
	for i := 0; i < 2*t.n; i++ {
		tmp := t.x[i][b5]
		t.x[i][b5] ^= (t.x[i][b5] ^ t.z[i][b5]) & m
		t.z[i][b5] ^= (t.z[i][b5] ^ tmp) & m
		if t.x[i][b5]&m != 0 && t.z[i][b5]&m != 0 {
			t.r[i] = (t.r[i] + 2) % 4
		}
	}
}

// Phase applies the S gate to qubit target: Z ^= X per row, with a
// sign flip for rows holding Y there.
func (t *Tableau) Phase(target int) {
	t.checkQubit(target)
	b5, m := target>>5, pw[target&31]
	for i := 0; i < 2*t.n; i++ {
		if t.x[i][b5]&m != 0 && t.z[i][b5]&m != 0 {
			t.r[i] = (t.r[i] + 2) % 4
		}
		t.z[i][b5] ^= t.x[i][b5] & m
	}
}

// CNOT applies a controlled NOT from control to target.  X propagates
// from control to target, Z propagates backwards from target to
// control, and a row picks up a sign when its control/target bits
// land on anticommuting pairs.
func (t *Tableau) CNOT(control, target int) {
	t.checkQubit(control)
	t.checkQubit(target)
	if control == target {
		panic(fmt.Sprintf("chp: cnot control and target are both qubit %d", control))
	}
	b5, bm := control>>5, pw[control&31]
	c5, cm := target>>5, pw[target&31]
	for i := 0; i < 2*t.n; i++ {
		xb := t.x[i][b5]&bm != 0
		zb := t.z[i][b5]&bm != 0
		xc := t.x[i][c5]&cm != 0
		zc := t.z[i][c5]&cm != 0
		if xb {
			t.x[i][c5] ^= cm
		}
		if zc {
			t.z[i][b5] ^= bm
		}
		if xb && zc && xc == zb {
			t.r[i] = (t.r[i] + 2) % 4
		}
	}
}
