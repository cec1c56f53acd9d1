package chp

import "math/rand"

// Config controls construction of a Tableau
type Config struct {
	// Qubits is the number of qubits the tableau represents.  Zero
	// is valid; the resulting tableau admits no gate or measurement
	// calls but still renders and reduces.
	Qubits int

	// RandBit supplies the single random bit consumed by each
	// indeterminate measurement.  It must return 0 or 1 with equal
	// probability.  When nil, DefaultConfig.RandBit is used.
	RandBit func() uint8
}

// DefaultConfig supplies values for Config fields left unset.  The
// default random-bit source draws from the shared math/rand source,
// so results vary run to run unless that source is seeded.
var DefaultConfig = Config{
	RandBit: func() uint8 {
		return uint8(rand.Intn(2))
	},
}

// SeededRandBit returns a random-bit source backed by a private
// math/rand generator seeded with seed, for reproducible runs.
func SeededRandBit(seed int64) func() uint8 {
	rng := rand.New(rand.NewSource(seed))
	return func() uint8 {
		return uint8(rng.Intn(2))
	}
}
