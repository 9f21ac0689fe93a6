package crops

import (
	"math"

	"ambiguity_crops/src/lp"
)

// PlanModel is the shared linear model every strategy starts from:
// acreage, pre-sale, production and shortfall variables, the coupling
// constraints between them, and one affine profit expression per scenario.
type PlanModel struct {
	LP   *lp.Model
	inst *Instance

	Acres     []int   // column per crop
	PreSold   []int   // column per crop
	Produced  [][]int // [scenario][crop]
	Shortfall [][]int // [scenario][crop]
	Profit    []*lp.Expr
}

// NewModel builds the shared model. Per scenario s and crop c:
//
//	produced[s][c] = yield[s][c] * acres[c]
//	shortfall[s][c] >= presold[c] - produced[s][c]
//	profit_s = sum_c [ presold_price*presold + spot*(produced - presold)
//	                   - (var_cost + fixed_cost)*acres - penalty*shortfall ]
//	profit_s >= MinProfit
//
// plus sum_c acres[c] = TotalAcres. Pre-sold units may exceed production;
// the shortfall slack keeps the profit expression affine.
func (inst *Instance) NewModel() *PlanModel {
	pm := &PlanModel{
		LP:        new(lp.Model),
		inst:      inst,
		Acres:     make([]int, len(inst.Crops)),
		PreSold:   make([]int, len(inst.Crops)),
		Produced:  make([][]int, len(inst.Scenarios)),
		Shortfall: make([][]int, len(inst.Scenarios)),
		Profit:    make([]*lp.Expr, len(inst.Scenarios)),
	}
	m := pm.LP
	inf := math.Inf(1)

	for i, c := range inst.Crops {
		pm.Acres[i] = m.AddCol("acres_"+c.Name, 0, inst.TotalAcres)
	}
	for i, c := range inst.Crops {
		pm.PreSold[i] = m.AddCol("presold_"+c.Name, 0, inst.maxYield(c.Name)*inst.TotalAcres)
	}
	for s, sc := range inst.Scenarios {
		pm.Produced[s] = make([]int, len(inst.Crops))
		for i, c := range inst.Crops {
			bound := sc.Crops[c.Name].Yield * inst.TotalAcres
			pm.Produced[s][i] = m.AddCol("produced_"+c.Name+"_"+sc.Name, 0, bound)
		}
	}
	for s, sc := range inst.Scenarios {
		pm.Shortfall[s] = make([]int, len(inst.Crops))
		for i, c := range inst.Crops {
			pm.Shortfall[s][i] = m.AddCol("shortfall_"+c.Name+"_"+sc.Name, 0, inf)
		}
	}

	acresSum := lp.NewExpr()
	for _, j := range pm.Acres {
		acresSum.Add(j, 1)
	}
	m.AddExprRow(inst.TotalAcres, acresSum, inst.TotalAcres)

	for s, sc := range inst.Scenarios {
		for i, c := range inst.Crops {
			p := sc.Crops[c.Name]
			coupling := lp.NewExpr()
			coupling.Add(pm.Produced[s][i], 1)
			coupling.Add(pm.Acres[i], -p.Yield)
			m.AddExprRow(0, coupling, 0)

			slack := lp.NewExpr()
			slack.Add(pm.Shortfall[s][i], 1)
			slack.Add(pm.Produced[s][i], 1)
			slack.Add(pm.PreSold[i], -1)
			m.AddExprRow(0, slack, inf)
		}
	}

	for s, sc := range inst.Scenarios {
		profit := lp.NewExpr()
		for i, c := range inst.Crops {
			p := sc.Crops[c.Name]
			profit.Add(pm.Acres[i], -(p.VarCost + c.FixedCost))
			profit.Add(pm.PreSold[i], p.PreSoldPrice-p.SpotPrice)
			profit.Add(pm.Produced[s][i], p.SpotPrice)
			profit.Add(pm.Shortfall[s][i], -p.Penalty)
		}
		pm.Profit[s] = profit
		m.AddExprRow(inst.MinProfit, profit, inf)
	}

	return pm
}

// extractPlan reads the decision variables and scenario profits out of an
// optimal result.
func (pm *PlanModel) extractPlan(strategy, solver string, res *lp.Result) *Plan {
	inst := pm.inst
	pl := &Plan{
		Strategy:  strategy,
		Solver:    solver,
		Objective: res.Objective,
		CropNames: make([]string, len(inst.Crops)),
		Acres:     make([]float64, len(inst.Crops)),
		PreSold:   make([]float64, len(inst.Crops)),
		Produced:  make([][]float64, len(inst.Scenarios)),
		Shortfall: make([][]float64, len(inst.Scenarios)),
		Profits:   make([]float64, len(inst.Scenarios)),
	}
	for i, c := range inst.Crops {
		pl.CropNames[i] = c.Name
		pl.Acres[i] = res.ColValues[pm.Acres[i]]
		pl.PreSold[i] = res.ColValues[pm.PreSold[i]]
	}
	for s := range inst.Scenarios {
		pl.Produced[s] = make([]float64, len(inst.Crops))
		pl.Shortfall[s] = make([]float64, len(inst.Crops))
		for i := range inst.Crops {
			pl.Produced[s][i] = res.ColValues[pm.Produced[s][i]]
			pl.Shortfall[s][i] = res.ColValues[pm.Shortfall[s][i]]
		}
		pl.Profits[s] = pm.Profit[s].Eval(res.ColValues)
	}
	return pl
}
