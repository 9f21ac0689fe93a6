package crops

import (
	"fmt"
	"strings"

	"ambiguity_crops/src/lp"
)

// Solve builds the shared model, applies the named strategy and runs the
// main solve. A non-optimal status is returned as an error carrying the
// strategy name; no partial plan is ever produced.
func (inst *Instance) Solve(strategy string, p Params, solver lp.Solver) (*Plan, error) {
	fn, ok := strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of: %s)",
			strategy, strings.Join(StrategyNames(), ", "))
	}

	pm := inst.NewModel()
	if err := fn(pm, p, solver); err != nil {
		return nil, fmt.Errorf("strategy %s: %w", strategy, err)
	}

	res, err := solver.Solve(pm.LP)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", strategy, err)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("strategy %s (w_wet=%v w_dry=%v risk_lambda=%v eps_wet=%v eps_dry=%v alpha_wet=%v alpha_dry=%v rho=%v): %w",
			strategy, p.WWet, p.WDry, p.RiskLambda, p.EpsWet, p.EpsDry, p.AlphaWet, p.AlphaDry, p.Rho, err)
	}
	return pm.extractPlan(strategy, solver.Name(), res), nil
}
