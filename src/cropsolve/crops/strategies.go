package crops

import (
	"fmt"
	"math"
	"sort"

	"ambiguity_crops/src/lp"
)

// Params are the scalarization knobs. Eps floors use NaN for "not set".
type Params struct {
	WWet       float64
	WDry       float64
	RiskLambda float64
	EpsWet     float64
	EpsDry     float64
	AlphaWet   float64
	AlphaDry   float64
	Rho        float64
}

func DefaultParams() Params {
	return Params{
		WWet:     0.5,
		WDry:     0.5,
		EpsWet:   math.NaN(),
		EpsDry:   math.NaN(),
		AlphaWet: 1,
		AlphaDry: 1,
		Rho:      0.001,
	}
}

func (p Params) alpha(s int) float64 {
	if s == Wet {
		return p.AlphaWet
	}
	return p.AlphaDry
}

func (p Params) eps(s int) float64 {
	if s == Wet {
		return p.EpsWet
	}
	return p.EpsDry
}

// A strategyFunc layers a strategy's objective and auxiliary
// variables/constraints onto the shared model. The solver is only used by
// strategies that need auxiliary single-scenario solves.
type strategyFunc func(pm *PlanModel, p Params, solver lp.Solver) error

var strategies = map[string]strategyFunc{
	"wet":               singleScenario(Wet),
	"dry":               singleScenario(Dry),
	"both":              applyBoth,
	"maxmin":            applyMaxmin,
	"minmax_regret":     applyMinmaxRegret,
	"multi_weighted":    applyMultiWeighted,
	"multi_eps":         applyMultiEps,
	"multi_tchebycheff": applyTchebycheff,
}

// StrategyNames lists the known strategies in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func singleScenario(s int) strategyFunc {
	return func(pm *PlanModel, _ Params, _ lp.Solver) error {
		pm.LP.SetObjective(pm.Profit[s], true)
		return nil
	}
}

func applyBoth(pm *PlanModel, _ Params, _ lp.Solver) error {
	total := pm.Profit[Wet].Clone()
	total.AddScaled(pm.Profit[Dry], 1)
	pm.LP.SetObjective(total, true)
	return nil
}

// applyMaxmin maximizes the worst-case profit: w <= profit_s for every
// scenario, w >= MinProfit, maximize w.
func applyMaxmin(pm *PlanModel, _ Params, _ lp.Solver) error {
	w := pm.LP.AddCol("w", pm.inst.MinProfit, math.Inf(1))
	for s := range pm.inst.Scenarios {
		gap := pm.Profit[s].Clone()
		gap.Add(w, -1)
		pm.LP.AddExprRow(0, gap, math.Inf(1))
	}
	pm.LP.SetObjective(lp.NewExpr().Add(w, 1), true)
	return nil
}

// applyMinmaxRegret first solves each scenario in isolation for its ideal
// profit, then minimizes R >= ideal_s - profit_s over scenarios.
func applyMinmaxRegret(pm *PlanModel, p Params, solver lp.Solver) error {
	ideals := make([]float64, len(pm.inst.Scenarios))
	for s, sc := range pm.inst.Scenarios {
		res, err := pm.inst.solveSingle(s, solver)
		if err != nil {
			return fmt.Errorf("ideal profit for scenario %s: %w", sc.Name, err)
		}
		ideals[s] = res.Objective
	}

	r := pm.LP.AddCol("regret", 0, math.Inf(1))
	for s := range pm.inst.Scenarios {
		// profit_s + R >= ideal_s
		cover := pm.Profit[s].Clone()
		cover.Add(r, 1)
		pm.LP.AddExprRow(ideals[s], cover, math.Inf(1))
	}
	pm.LP.SetObjective(lp.NewExpr().Add(r, 1), false)
	return nil
}

// applyMultiWeighted maximizes w_wet*profit_wet + w_dry*profit_dry, less a
// penalty on |profit_wet - profit_dry| when risk lambda is positive.
func applyMultiWeighted(pm *PlanModel, p Params, _ lp.Solver) error {
	obj := lp.NewExpr()
	obj.AddScaled(pm.Profit[Wet], p.WWet)
	obj.AddScaled(pm.Profit[Dry], p.WDry)

	if lam := math.Max(0, p.RiskLambda); lam > 0 {
		d := pm.LP.AddCol("imbalance", 0, math.Inf(1))
		for _, pair := range [][2]int{{Wet, Dry}, {Dry, Wet}} {
			// D >= profit_a - profit_b
			bound := lp.NewExpr().Add(d, 1)
			bound.AddScaled(pm.Profit[pair[0]], -1)
			bound.AddScaled(pm.Profit[pair[1]], 1)
			pm.LP.AddExprRow(0, bound, math.Inf(1))
		}
		obj.Add(d, -lam)
	}
	pm.LP.SetObjective(obj, true)
	return nil
}

// applyMultiEps is the weighted objective plus hard per-scenario profit
// floors for whichever eps flags were supplied.
func applyMultiEps(pm *PlanModel, p Params, solver lp.Solver) error {
	pm.addEpsFloors(p)
	return applyMultiWeighted(pm, p, solver)
}

func (pm *PlanModel) addEpsFloors(p Params) {
	for s := range pm.inst.Scenarios {
		if eps := p.eps(s); !math.IsNaN(eps) {
			pm.LP.AddExprRow(eps, pm.Profit[s].Clone(), math.Inf(1))
		}
	}
}

// applyTchebycheff is the augmented-minimax scalarization. Phase one
// solves each scenario alone: the optimum is that scenario's excellent
// level, and the profit the other scenario would realize at that same plan
// feeds the other scenario's okay level (floored at MinProfit). Phase two
// minimizes t + rho*sum(S_s) subject to t >= alpha_s*S_s, where S_s is the
// shortfall from excellent_s normalized by the excellent-okay gap. Eps
// floors, when supplied, stay hard constraints on top.
func applyTchebycheff(pm *PlanModel, p Params, solver lp.Solver) error {
	inst := pm.inst
	excellent := make([]float64, len(inst.Scenarios))
	okay := make([]float64, len(inst.Scenarios))
	for s := range inst.Scenarios {
		okay[s] = inst.MinProfit
	}
	for s, sc := range inst.Scenarios {
		res, err := inst.solveSingle(s, solver)
		if err != nil {
			return fmt.Errorf("excellent level for scenario %s: %w", sc.Name, err)
		}
		excellent[s] = res.Objective
		for o := range inst.Scenarios {
			if o == s {
				continue
			}
			// The other scenario's profit expressions share the column
			// layout of the auxiliary model, so they evaluate directly.
			if cross := pm.Profit[o].Eval(res.ColValues); cross > okay[o] {
				okay[o] = cross
			}
		}
	}

	pm.addEpsFloors(p)

	t := pm.LP.AddCol("t", 0, math.Inf(1))
	obj := lp.NewExpr().Add(t, 1)
	for s, sc := range inst.Scenarios {
		gap := excellent[s] - okay[s]
		if gap <= 1e-9 {
			return fmt.Errorf("scenario %s: excellent level %.2f does not exceed okay level %.2f",
				sc.Name, excellent[s], okay[s])
		}
		shortfall := pm.LP.AddCol("nshort_"+sc.Name, 0, math.Inf(1))
		// gap*S_s + profit_s = excellent_s
		def := pm.Profit[s].Clone()
		def.Add(shortfall, gap)
		pm.LP.AddExprRow(excellent[s], def, excellent[s])
		// t >= alpha_s * S_s
		dom := lp.NewExpr().Add(t, 1).Add(shortfall, -p.alpha(s))
		pm.LP.AddExprRow(0, dom, math.Inf(1))

		obj.Add(shortfall, p.Rho)
	}
	pm.LP.SetObjective(obj, false)
	return nil
}

// solveSingle maximizes one scenario's profit over a fresh copy of the
// shared model and returns the solver result.
func (inst *Instance) solveSingle(s int, solver lp.Solver) (*lp.Result, error) {
	aux := inst.NewModel()
	aux.LP.SetObjective(aux.Profit[s], true)
	res, err := solver.Solve(aux.LP)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
