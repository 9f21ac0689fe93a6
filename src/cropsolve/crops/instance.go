package crops

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultInstance returns the two-crop wet/dry problem with its literal
// constants: 100 acres to split between crops A and B, a 50000 profit
// floor per scenario, and the scenario cost/yield/price table.
func DefaultInstance() *Instance {
	return &Instance{
		Crops: []Crop{
			{Name: "A", FixedCost: 150},
			{Name: "B", FixedCost: 100},
		},
		Scenarios: []Scenario{
			{
				Name: "wet",
				Crops: map[string]ScenarioParams{
					"A": {VarCost: 50, Yield: 800, SpotPrice: 2.50, PreSoldPrice: 3.90, Penalty: 1.50},
					"B": {VarCost: 150, Yield: 150, SpotPrice: 5.00, PreSoldPrice: 3.90, Penalty: 1.45},
				},
			},
			{
				Name: "dry",
				Crops: map[string]ScenarioParams{
					"A": {VarCost: 200, Yield: 300, SpotPrice: 4.50, PreSoldPrice: 3.90, Penalty: 1.50},
					"B": {VarCost: 40, Yield: 600, SpotPrice: 3.00, PreSoldPrice: 3.90, Penalty: 1.45},
				},
			},
		},
		TotalAcres: 100,
		MinProfit:  50000,
	}
}

// LoadInstance reads a problem instance from a YAML file.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance file %s: %w", path, err)
	}
	inst := new(Instance)
	if err := yaml.Unmarshal(data, inst); err != nil {
		return nil, fmt.Errorf("failed to parse instance file %s: %w", path, err)
	}
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instance %s: %w", path, err)
	}
	return inst, nil
}

// Validate checks the instance's shape. Economic plausibility of the
// constants is not checked; a bad combination surfaces as an infeasible
// solve instead.
func (inst *Instance) Validate() error {
	if len(inst.Crops) == 0 {
		return fmt.Errorf("at least one crop must be defined")
	}
	if len(inst.Scenarios) != 2 {
		return fmt.Errorf("exactly two scenarios required, got %d", len(inst.Scenarios))
	}
	if inst.TotalAcres <= 0 {
		return fmt.Errorf("total_acres must be positive, got %v", inst.TotalAcres)
	}
	seen := make(map[string]bool)
	for _, c := range inst.Crops {
		if c.Name == "" {
			return fmt.Errorf("crop name cannot be empty")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate crop name: %s", c.Name)
		}
		seen[c.Name] = true
	}
	for _, sc := range inst.Scenarios {
		for _, c := range inst.Crops {
			if _, ok := sc.Crops[c.Name]; !ok {
				return fmt.Errorf("scenario %s is missing parameters for crop %s", sc.Name, c.Name)
			}
		}
	}
	return nil
}

// maxYield is the largest per-acre yield of a crop across scenarios, used
// to bound pre-sale and production variables.
func (inst *Instance) maxYield(crop string) float64 {
	y := 0.0
	for _, sc := range inst.Scenarios {
		if p := sc.Crops[crop]; p.Yield > y {
			y = p.Yield
		}
	}
	return y
}
