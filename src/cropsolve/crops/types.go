// Package crops plans acreage and pre-sale commitments for crops whose
// costs, yields and prices depend on which of two weather scenarios
// materializes. The plan is found by scalarizing the per-scenario profits
// into a single objective and delegating the solve to an external backend.
package crops

import (
	"fmt"
	"strings"
)

// Crop holds the scenario-independent constants of one crop.
type Crop struct {
	Name      string  `yaml:"name"`
	FixedCost float64 `yaml:"fixed_cost"` // per acre
}

// ScenarioParams are the constants a scenario assigns to one crop.
type ScenarioParams struct {
	VarCost      float64 `yaml:"var_cost"`   // per acre
	Yield        float64 `yaml:"yield"`      // units per acre
	SpotPrice    float64 `yaml:"spot_price"` // per unit sold on the market
	PreSoldPrice float64 `yaml:"pre_sold_price"`
	Penalty      float64 `yaml:"penalty"` // per undelivered pre-sold unit
}

// Scenario is one of the mutually exclusive future states.
type Scenario struct {
	Name  string                    `yaml:"name"`
	Crops map[string]ScenarioParams `yaml:"crops"`
}

// Instance is one crop-planning problem. Scenario order is significant:
// index 0 is wet, index 1 is dry.
type Instance struct {
	Crops      []Crop     `yaml:"crops"`
	Scenarios  []Scenario `yaml:"scenarios"`
	TotalAcres float64    `yaml:"total_acres"`
	MinProfit  float64    `yaml:"min_profit"`
}

const (
	Wet = 0
	Dry = 1
)

// Plan is the solved allocation. Per-scenario slices are indexed by
// scenario then by crop, parallel to Instance.Crops.
type Plan struct {
	Strategy  string
	Solver    string
	Objective float64
	CropNames []string
	Acres     []float64
	PreSold   []float64
	Produced  [][]float64
	Shortfall [][]float64
	Profits   []float64
}

func (pl *Plan) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "----- Model Summary (%s, %s) -----\n", pl.Strategy, pl.Solver)
	fmt.Fprintf(s, "%-40s %-20s %-20s\n", "Variable", "Wet Scenario", "Dry Scenario")
	for i, name := range pl.CropNames {
		v := fmt.Sprintf("%.2f", pl.Acres[i])
		fmt.Fprintf(s, "%-40s %-20s %-20s\n", "Acres of Crop "+name, v, v)
	}
	for i, name := range pl.CropNames {
		v := fmt.Sprintf("%.2f", pl.PreSold[i])
		fmt.Fprintf(s, "%-40s %-20s %-20s\n", "Pre-sold units of Crop "+name, v, v)
	}
	for i, name := range pl.CropNames {
		fmt.Fprintf(s, "%-40s %-20.2f %-20.2f\n", "Produced units of Crop "+name,
			pl.Produced[Wet][i], pl.Produced[Dry][i])
	}
	for i, name := range pl.CropNames {
		fmt.Fprintf(s, "%-40s %-20.2f %-20.2f\n", "Shortfall "+name,
			pl.Shortfall[Wet][i], pl.Shortfall[Dry][i])
	}
	fmt.Fprintf(s, "%-40s %-20.2f %-20s\n", "Profit in Wet scenario", pl.Profits[Wet], "")
	fmt.Fprintf(s, "%-40s %-20s %-20.2f\n", "Profit in Dry scenario", "", pl.Profits[Dry])
	fmt.Fprintf(s, "Objective: %.2f\n", pl.Objective)
	s.WriteString("------------------------")
	return s.String()
}
