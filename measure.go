package chp

import "fmt"

// Measurement is the outcome of a single-qubit measurement.
type Measurement struct {
	// Bit is the measured eigenvalue, 0 or 1.
	Bit uint8
	// Random reports whether the outcome was indeterminate, i.e.
	// decided by the tableau's random-bit source rather than forced
	// by the state.
	Random bool
}

func (m Measurement) String() string {
	kind := "fixed"
	if m.Random {
		kind = "random"
	}
	return fmt.Sprintf("%d (%s)", m.Bit, kind)
}

// Measure measures qubit target in the computational basis, collapsing
// the state in place when the outcome is indeterminate.  Exactly one
// bit is drawn from the tableau's random-bit source in that case, and
// none otherwise.
func (t *Tableau) Measure(target int) Measurement {
	t.checkQubit(target)
	b5, m := target>>5, pw[target&31]

	// A stabilizer with an X bit at target anticommutes with the
	// measured Z observable, so the outcome is random.
	p := -1
	for i := t.n; i < 2*t.n; i++ {
		if t.x[i][b5]&m != 0 {
			p = i
			break
		}
	}

	if p >= 0 {
		// Stabilizer p is saved into its destabilizer slot and
		// replaced by Z_target, whose sign is the random outcome.
		// Every other anticommuting row is then fixed up by
		// multiplying the saved generator in, which clears its X bit
		// at target and restores commutativity.
		t.rowcopy(p-t.n, p)
		t.rowset(p, target+t.n)
		t.r[p] = 2 * t.randBit()
		for i := 0; i < 2*t.n; i++ {
			if i != p-t.n && t.x[i][b5]&m != 0 {
				t.rowmult(i, p-t.n)
			}
		}
		return Measurement{Bit: t.r[p] >> 1, Random: true}
	}

	// Determinate: the outcome is the sign of the product of the
	// stabilizers paired with destabilizers that anticommute with
	// Z_target, accumulated in the scratch row.
	sc := 2 * t.n
	first := -1
	for i := 0; i < t.n; i++ {
		if t.x[i][b5]&m != 0 {
			first = i
			break
		}
	}
	if first < 0 {
		// unreachable for a well-formed tableau: the destabilizers
		// and stabilizers together span all Pauli strings
		panic(fmt.Sprintf("chp: no generator anticommutes with Z on qubit %d", target))
	}
	t.rowcopy(sc, first+t.n)
	for i := first + 1; i < t.n; i++ {
		if t.x[i][b5]&m != 0 {
			t.rowmult(sc, i+t.n)
		}
	}
	if t.r[sc] != 0 {
		return Measurement{Bit: 1}
	}
	return Measurement{Bit: 0}
}
