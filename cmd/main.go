package main

import (
	"fmt"
	"io"
	"log"
	"os"

	chp "github.com/quantopo/go-chp"

	murmur "github.com/aviddiviner/go-murmur"
	"github.com/urfave/cli/v2"
)

func loadProgram(c *cli.Context) (int, []chp.Instruction, error) {
	var reader io.Reader = os.Stdin
	if c.IsSet("input") {
		f, err := os.Open(c.String("input"))
		if err != nil {
			return 0, nil, err
		}
		defer f.Close()
		reader = f
	}
	prog, err := chp.ParseProgram(reader)
	if err != nil {
		return 0, nil, fmt.Errorf("can't parse circuit: %w", err)
	}

	used := chp.QubitsUsed(prog)
	n := 0
	for i, ok := used.NextSet(0); ok; i, ok = used.NextSet(i + 1) {
		n = int(i) + 1
	}
	if c.IsSet("qubits") {
		if qn := c.Int("qubits"); qn >= n {
			n = qn
		} else {
			return 0, nil, fmt.Errorf("circuit touches qubit %d but only %d qubit(s) requested", n-1, qn)
		}
	}
	if err := chp.ValidateProgram(n, prog); err != nil {
		return 0, nil, fmt.Errorf("invalid circuit: %w", err)
	}
	log.Printf("%d instruction(s) on %d of %d qubit(s)", len(prog), used.Count(), n)
	return n, prog, nil
}

func newTableau(c *cli.Context, n int) *chp.Tableau {
	cfg := chp.Config{Qubits: n}
	if c.IsSet("seed") {
		cfg.RandBit = chp.SeededRandBit(int64(murmur.MurmurHash64A([]byte(c.String("seed")), 0)))
	}
	return chp.NewWithConfig(cfg)
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"in", "i"},
			Usage:   "circuit file to read (default is stdin)",
		},
		&cli.IntFlag{
			Name:    "qubits",
			Aliases: []string{"n"},
			Usage:   "qubit count (default is one past the highest qubit the circuit touches)",
		},
		&cli.StringFlag{
			Name:    "seed",
			Aliases: []string{"s"},
			Usage:   "seed string for deterministic measurement randomness",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "chp",
		Usage: "simulate stabilizer circuits (Hadamard, Phase, CNOT + measurement)",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a circuit and print each measurement outcome",
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:  "state",
						Usage: "also print the final tableau",
					},
					&cli.BoolFlag{
						Name:    "ket",
						Aliases: []string{"k"},
						Usage:   "also print the final state in ket notation",
					},
				),
				Action: func(c *cli.Context) error {
					n, prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					t := newTableau(c, n)
					run := t.Run(prog)
					i := 0
					for m, ok := run.Next(); ok; m, ok = run.Next() {
						fmt.Printf("outcome of measurement %d: %s\n", i, m)
						i++
					}
					if c.Bool("state") {
						fmt.Print(t.String())
					}
					if c.Bool("ket") {
						ket, err := t.Ket()
						if err != nil {
							return err
						}
						fmt.Print(ket)
					}
					return nil
				},
			},
			{
				Name:  "ket",
				Usage: "run a circuit and print the final state in ket notation",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					n, prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					t := newTableau(c, n)
					run := t.Run(prog)
					for _, ok := run.Next(); ok; _, ok = run.Next() {
					}
					g := t.Reduce()
					ket, err := t.Ket()
					if err != nil {
						return err
					}
					fmt.Printf("%d nonzero basis state(s):\n%s", 1<<uint(g), ket)
					return nil
				},
			},
			{
				Name:  "state",
				Usage: "run a circuit and print the final stabilizer tableau",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					n, prog, err := loadProgram(c)
					if err != nil {
						return err
					}
					t := newTableau(c, n)
					run := t.Run(prog)
					for _, ok := run.Next(); ok; _, ok = run.Next() {
					}
					fmt.Print(t.String())
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
