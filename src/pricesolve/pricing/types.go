// Package pricing picks one price point per product from a pre-computed
// price-demand table and orders stock to match the predicted demand,
// subject to a shared order capacity. The exact formulation is a small
// MILP; greedy and genetic heuristics are available as alternatives.
package pricing

import (
	"fmt"
	"strings"
)

// PriceLevel is one entry of a product's price-demand table: the predicted
// demand when the product is offered at that price. The table itself is an
// external input; fitting it is out of scope.
type PriceLevel struct {
	Price  float64 `yaml:"price"`
	Demand float64 `yaml:"demand"`
}

type Product struct {
	Name     string       `yaml:"name"`
	UnitCost float64      `yaml:"unit_cost"`
	Levels   []PriceLevel `yaml:"levels"`
}

// margin is the profit contribution of offering the product at level l.
func (p *Product) margin(l int) float64 {
	lv := p.Levels[l]
	return (lv.Price - p.UnitCost) * lv.Demand
}

// Instance is one pricing problem: products with their price ladders and
// the total order quantity the warehouse can take.
type Instance struct {
	Products []Product `yaml:"products"`
	Capacity float64   `yaml:"capacity"`
}

// Plan is a chosen price level per product. Quantities equal the predicted
// demand at the chosen prices.
type Plan struct {
	Method     string
	Picks      []int
	Quantities []float64
	Margin     float64
}

func (inst *Instance) planFor(method string, picks []int) *Plan {
	pl := &Plan{
		Method:     method,
		Picks:      picks,
		Quantities: make([]float64, len(picks)),
	}
	for i, l := range picks {
		pl.Quantities[i] = inst.Products[i].Levels[l].Demand
		pl.Margin += inst.Products[i].margin(l)
	}
	return pl
}

func (inst *Instance) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "N. products: %d\n", len(inst.Products))
	fmt.Fprintf(s, "Capacity: %.2f\n", inst.Capacity)
	for _, p := range inst.Products {
		fmt.Fprintf(s, "%s (unit cost %.2f): ", p.Name, p.UnitCost)
		for _, lv := range p.Levels {
			fmt.Fprintf(s, "%.2f->%.0f ", lv.Price, lv.Demand)
		}
		s.WriteRune('\n')
	}
	return s.String()
}

func (pl *Plan) Format(inst *Instance) string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "----- Pricing Plan (%s) -----\n", pl.Method)
	fmt.Fprintf(s, "%-20s %-12s %-12s %-12s\n", "Product", "Price", "Order qty", "Margin")
	for i, l := range pl.Picks {
		p := inst.Products[i]
		fmt.Fprintf(s, "%-20s %-12.2f %-12.2f %-12.2f\n",
			p.Name, p.Levels[l].Price, pl.Quantities[i], p.margin(l))
	}
	fmt.Fprintf(s, "Total margin: %.2f\n", pl.Margin)
	s.WriteString("------------------------")
	return s.String()
}
