package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"ambiguity_crops/src/cropsolve/crops"
	"ambiguity_crops/src/lp"
)

func main() {
	var strategy, solverName, dataPath string
	var minProfit float64
	p := crops.DefaultParams()

	flag.StringVar(&strategy, "scenario", "both",
		"Strategy to solve: "+strings.Join(crops.StrategyNames(), ", "))
	flag.StringVar(&solverName, "solver", "highs",
		"Solver backend: "+strings.Join(lp.Names(), ", "))
	flag.StringVar(&dataPath, "data", "", "YAML instance file (default: built-in constants)")
	flag.Float64Var(&minProfit, "min-profit", math.NaN(), "Override the per-scenario profit floor")
	flag.Float64Var(&p.WWet, "w-wet", p.WWet, "Weight on wet-scenario profit (for weighted objectives)")
	flag.Float64Var(&p.WDry, "w-dry", p.WDry, "Weight on dry-scenario profit (for weighted objectives)")
	flag.Float64Var(&p.RiskLambda, "risk-lambda", 0, "Penalty on imbalance |profit_wet - profit_dry| (>=0)")
	flag.Float64Var(&p.EpsWet, "eps-wet", p.EpsWet, "Hard lower bound on wet-scenario profit")
	flag.Float64Var(&p.EpsDry, "eps-dry", p.EpsDry, "Hard lower bound on dry-scenario profit")
	flag.Float64Var(&p.AlphaWet, "alpha-wet", p.AlphaWet, "Chebyshev weight for the wet scenario")
	flag.Float64Var(&p.AlphaDry, "alpha-dry", p.AlphaDry, "Chebyshev weight for the dry scenario")
	flag.Float64Var(&p.Rho, "rho", p.Rho, "Chebyshev tie-breaking weight on the shortfall sum")
	flag.Parse()

	solver, err := lp.New(solverName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	inst := crops.DefaultInstance()
	if dataPath != "" {
		inst, err = crops.LoadInstance(dataPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if !math.IsNaN(minProfit) {
		inst.MinProfit = minProfit
	}

	plan, err := inst.Solve(strategy, p, solver)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(plan)
}
