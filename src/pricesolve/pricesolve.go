package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"ambiguity_crops/src/lp"
	"ambiguity_crops/src/pricesolve/pricing"
)

func main() {
	var dataPath, solverName, method string
	var capacity float64
	var rounds int

	flag.StringVar(&dataPath, "data", "", "YAML pricing instance file")
	flag.StringVar(&solverName, "solver", "highs",
		"Solver backend for the exact method: "+strings.Join(lp.Names(), ", "))
	flag.StringVar(&method, "method", "exact", "Solution method: exact, greedy or genetic")
	flag.Float64Var(&capacity, "capacity", 0, "Override the instance's order capacity")
	flag.IntVar(&rounds, "rounds", 50, "Genetic method: stop after this many rounds without improvement")
	flag.Parse()

	if dataPath == "" {
		fmt.Fprintln(os.Stderr, "Must specify an instance file with -data")
		os.Exit(1)
	}
	inst, err := pricing.LoadInstance(dataPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if capacity > 0 {
		inst.Capacity = capacity
	}

	var plan *pricing.Plan
	switch method {
	case "exact":
		solver, err := lp.New(solverName)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		plan, err = inst.SolveExact(solver)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "greedy":
		plan, err = inst.SolveGreedy()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "genetic":
		plan = inst.SolveGenetic(rounds)
		if plan == nil {
			fmt.Fprintln(os.Stderr, "genetic pricing: no feasible plan found")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown method %q (want exact, greedy or genetic)\n", method)
		os.Exit(1)
	}

	fmt.Println(plan.Format(inst))
}
