package main

import (
	"fmt"

	chp "github.com/quantopo/go-chp"
)

func main() {
	// Prepare a Bell pair: Hadamard on qubit 0, then CNOT onto qubit 1
	t := chp.New(2)
	t.Hadamard(0)
	t.CNOT(0, 1)

	// Dump the generators and the state in ket form
	fmt.Print(t.String())
	ket, err := t.Ket()
	if err != nil {
		panic(err)
	}
	fmt.Print(ket)

	// Both measurements agree; the first is random, the second forced
	m0 := t.Measure(0)
	m1 := t.Measure(1)
	fmt.Printf("qubit 0: %s\nqubit 1: %s\n", m0, m1)
}
