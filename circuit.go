package chp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Instruction is one step of a circuit: a gate application or a
// single-qubit measurement.
type Instruction interface {
	isInstruction()
}

// Measure is the instruction form of a single-qubit measurement of
// Target.
type Measure struct {
	Target int
}

func (HadamardGate) isInstruction() {}
func (PhaseGate) isInstruction()    {}
func (CNotGate) isInstruction()     {}
func (Measure) isInstruction()      {}

func eachQubit(in Instruction, f func(q int)) {
	switch v := in.(type) {
	case HadamardGate:
		f(v.Target)
	case PhaseGate:
		f(v.Target)
	case CNotGate:
		f(v.Control)
		f(v.Target)
	case Measure:
		f(v.Target)
	}
}

// ParseProgram reads a circuit in the classic CHP text format, one
// instruction per line:
//
//	h q       apply Hadamard to qubit q
//	p q       apply Phase to qubit q
//	c q1 q2   apply CNOT with control q1, target q2
//	m q       measure qubit q
//
// A .chp-style free-text preamble is supported: when the lines before
// the first line starting with '#' are not themselves instructions,
// everything up to and including that line is treated as comment.  A
// circuit with no preamble keeps its instructions even when a '#'
// comment appears mid-file.  Blank lines and '#' lines are skipped
// everywhere.
func ParseProgram(r io.Reader) ([]Instruction, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	start := 0
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "#") {
			if !instructionsOnly(lines[:i]) {
				start = i + 1
			}
			break
		}
	}

	var prog []Instruction
	for off, raw := range lines[start:] {
		lineno := start + off + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		in, err := parseLine(lineno, line)
		if err != nil {
			return nil, err
		}
		prog = append(prog, in)
	}
	return prog, nil
}

// instructionsOnly reports whether every non-blank line parses as an
// instruction, which distinguishes circuit text containing a comment
// from a free-text preamble.
func instructionsOnly(lines []string) bool {
	for _, l := range lines {
		line := strings.TrimSpace(l)
		if line == "" {
			continue
		}
		if _, err := parseLine(0, line); err != nil {
			return false
		}
	}
	return true
}

func parseLine(lineno int, line string) (Instruction, error) {
	fields := strings.Fields(line)
	op := strings.ToLower(fields[0])
	args := make([]int, 0, 2)
	for _, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad qubit index %q", lineno, f)
		}
		args = append(args, v)
	}
	want := 1
	if op == "c" {
		want = 2
	}
	if len(args) != want {
		return nil, fmt.Errorf("line %d: %q takes %d argument(s), got %d", lineno, op, want, len(args))
	}
	switch op {
	case "h":
		return HadamardGate{Target: args[0]}, nil
	case "p":
		return PhaseGate{Target: args[0]}, nil
	case "c":
		return CNotGate{Control: args[0], Target: args[1]}, nil
	case "m":
		return Measure{Target: args[0]}, nil
	}
	return nil, fmt.Errorf("line %d: unknown instruction %q", lineno, op)
}

// QubitsUsed returns the set of qubit indices the program references.
// Negative indices (which ValidateProgram rejects) are ignored.
func QubitsUsed(prog []Instruction) *bitset.BitSet {
	used := bitset.New(0)
	for _, in := range prog {
		eachQubit(in, func(q int) {
			if q >= 0 {
				used.Set(uint(q))
			}
		})
	}
	return used
}

// ValidateProgram checks every instruction of prog against an n-qubit
// tableau, so a caller can reject a bad circuit with an error instead
// of panicking mid-run.
func ValidateProgram(n int, prog []Instruction) error {
	for pos, in := range prog {
		var err error
		eachQubit(in, func(q int) {
			if err == nil && (q < 0 || q >= n) {
				err = fmt.Errorf("instruction %d: qubit %d out of range [0,%d)", pos, q, n)
			}
		})
		if err != nil {
			return err
		}
		if cx, ok := in.(CNotGate); ok && cx.Control == cx.Target {
			return fmt.Errorf("instruction %d: cnot control and target are both qubit %d", pos, cx.Control)
		}
	}
	return nil
}

// Run prepares a lazy execution of prog against the tableau.  Nothing
// is applied until measurement outcomes are pulled with Next; the
// execution is single-pass and cannot be restarted or replayed.
func (t *Tableau) Run(prog []Instruction) *Run {
	return &Run{t: t, prog: prog}
}

// Run is an in-progress circuit execution.
type Run struct {
	t    *Tableau
	prog []Instruction
	pos  int
}

// Next applies buffered gate instructions up to and including the
// next measurement and returns its outcome.  ok is false once the
// program is exhausted; any gates trailing the last measurement have
// been applied by then.
func (r *Run) Next() (m Measurement, ok bool) {
	for r.pos < len(r.prog) {
		in := r.prog[r.pos]
		r.pos++
		switch v := in.(type) {
		case Measure:
			return r.t.Measure(v.Target), true
		case Gate:
			v.Apply(r.t)
		}
	}
	return Measurement{}, false
}
