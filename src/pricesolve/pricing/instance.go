package pricing

import (
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"
)

// LoadInstance reads a pricing instance from a YAML file.
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

func (inst *Instance) Validate() error {
	if len(inst.Products) == 0 {
		return fmt.Errorf("at least one product must be defined")
	}
	if inst.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %v", inst.Capacity)
	}
	names := mapset.NewSet[string]()
	for _, p := range inst.Products {
		if p.Name == "" {
			return fmt.Errorf("product name cannot be empty")
		}
		if !names.Add(p.Name) {
			return fmt.Errorf("duplicate product name: %s", p.Name)
		}
		if len(p.Levels) == 0 {
			return fmt.Errorf("product %s has an empty price ladder", p.Name)
		}
		prices := mapset.NewSet[float64]()
		for _, lv := range p.Levels {
			if !prices.Add(lv.Price) {
				return fmt.Errorf("product %s has duplicate price level %v", p.Name, lv.Price)
			}
			if lv.Demand < 0 {
				return fmt.Errorf("product %s has negative demand at price %v", p.Name, lv.Price)
			}
		}
	}
	return nil
}
