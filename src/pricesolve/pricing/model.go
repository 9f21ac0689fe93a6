package pricing

import (
	"fmt"
	"math"

	"ambiguity_crops/src/lp"
)

// PickModel is the exact MILP: one binary pick per (product, level), each
// product picks exactly one level, total ordered quantity fits capacity,
// total margin is maximized.
type PickModel struct {
	LP    *lp.Model
	Picks [][]int // [product][level] column index
	inst  *Instance
}

func (inst *Instance) NewModel() *PickModel {
	pm := &PickModel{
		LP:    new(lp.Model),
		Picks: make([][]int, len(inst.Products)),
		inst:  inst,
	}
	m := pm.LP

	obj := lp.NewExpr()
	capacity := lp.NewExpr()
	for i := range inst.Products {
		p := &inst.Products[i]
		pm.Picks[i] = make([]int, len(p.Levels))
		one := lp.NewExpr()
		for l, lv := range p.Levels {
			j := m.AddIntCol(fmt.Sprintf("pick_%s_%d", p.Name, l), 0, 1)
			pm.Picks[i][l] = j
			one.Add(j, 1)
			capacity.Add(j, lv.Demand)
			obj.Add(j, p.margin(l))
		}
		m.AddExprRow(1, one, 1)
	}
	m.AddExprRow(math.Inf(-1), capacity, inst.Capacity)
	m.SetObjective(obj, true)
	return pm
}

// SolveExact runs the MILP through the given backend.
func (inst *Instance) SolveExact(solver lp.Solver) (*Plan, error) {
	pm := inst.NewModel()
	res, err := solver.Solve(pm.LP)
	if err != nil {
		return nil, fmt.Errorf("exact pricing: %w", err)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("exact pricing: %w", err)
	}

	picks := make([]int, len(inst.Products))
	for i := range inst.Products {
		for l, j := range pm.Picks[i] {
			if res.ColValues[j] > 0.5 {
				picks[i] = l
				break
			}
		}
	}
	return inst.planFor("exact", picks), nil
}
