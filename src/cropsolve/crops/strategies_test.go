package crops

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"ambiguity_crops/src/lp"
)

// stubSolver returns canned results in order and records the models it was
// asked to solve.
type stubSolver struct {
	results []*lp.Result
	models  []*lp.Model
}

func (s *stubSolver) Name() string { return "stub" }

func (s *stubSolver) Solve(m *lp.Model) (*lp.Result, error) {
	s.models = append(s.models, m.Clone())
	if len(s.results) == 0 {
		return nil, fmt.Errorf("stub: no canned result left")
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r, nil
}

// cornerResults are the single-scenario ideals of the default instance:
// all acres on A maximizes wet profit, all acres on B maximizes dry
// profit.
func cornerResults(inst *Instance) []*lp.Result {
	pm := inst.NewModel()
	return []*lp.Result{
		{Status: lp.StatusOptimal, ColValues: cornerPlan(pm, 0), Objective: 180000},
		{Status: lp.StatusOptimal, ColValues: cornerPlan(pm, 1), Objective: 166000},
	}
}

func objectiveCoeff(m *lp.Model, col int) float64 {
	if col < len(m.ColCosts) {
		return m.ColCosts[col]
	}
	return 0
}

func TestStrategyNames(t *testing.T) {
	names := StrategyNames()
	if len(names) != 8 {
		t.Fatalf("Expected 8 strategies, got %d: %v", len(names), names)
	}
	for _, want := range []string{"wet", "dry", "both", "maxmin", "minmax_regret",
		"multi_weighted", "multi_eps", "multi_tchebycheff"} {
		if _, ok := strategies[want]; !ok {
			t.Errorf("Missing strategy %s", want)
		}
	}
}

func TestSingleScenarioObjectives(t *testing.T) {
	inst := DefaultInstance()
	for s, name := range []string{"wet", "dry"} {
		pm := inst.NewModel()
		if err := strategies[name](pm, DefaultParams(), nil); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !pm.LP.Maximize {
			t.Errorf("%s: expected maximization", name)
		}
		if got := objectiveCoeff(pm.LP, pm.Acres[0]); got != pm.Profit[s].Coeffs[pm.Acres[0]] {
			t.Errorf("%s: objective does not match scenario profit (%v)", name, got)
		}
	}
}

func TestBothSumsProfits(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	if err := strategies["both"](pm, DefaultParams(), nil); err != nil {
		t.Fatal(err)
	}
	// acres A: -200 wet + -350 dry
	if got := objectiveCoeff(pm.LP, pm.Acres[0]); got != -550 {
		t.Errorf("Expected summed coefficient -550, got %v", got)
	}
}

func TestMaxmin(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	baseRows := pm.LP.NumRows()
	if err := strategies["maxmin"](pm, DefaultParams(), nil); err != nil {
		t.Fatal(err)
	}

	w := pm.LP.NumCols() - 1
	if pm.LP.ColNames[w] != "w" {
		t.Fatalf("Expected trailing w column, got %q", pm.LP.ColNames[w])
	}
	if pm.LP.ColLower[w] != inst.MinProfit {
		t.Errorf("w should be floored at MinProfit, got %v", pm.LP.ColLower[w])
	}
	if pm.LP.NumRows() != baseRows+2 {
		t.Errorf("Expected 2 domination rows, got %d extra", pm.LP.NumRows()-baseRows)
	}
	// Rows encode profit_s - w >= 0.
	for r := baseRows; r < pm.LP.NumRows(); r++ {
		if got := rowCoeff(pm.LP, r, w); got != -1 {
			t.Errorf("Row %d: expected coefficient -1 on w, got %v", r, got)
		}
		if pm.LP.RowLower[r] != 0 || !math.IsInf(pm.LP.RowUpper[r], 1) {
			t.Errorf("Row %d bounds: %v..%v", r, pm.LP.RowLower[r], pm.LP.RowUpper[r])
		}
	}
	if !pm.LP.Maximize || objectiveCoeff(pm.LP, w) != 1 {
		t.Errorf("Objective should maximize w alone")
	}
}

func TestMinmaxRegret(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	baseRows := pm.LP.NumRows()
	solver := &stubSolver{results: cornerResults(inst)}

	if err := strategies["minmax_regret"](pm, DefaultParams(), solver); err != nil {
		t.Fatal(err)
	}
	if len(solver.models) != 2 {
		t.Fatalf("Expected 2 auxiliary solves, got %d", len(solver.models))
	}

	r := pm.LP.NumCols() - 1
	if pm.LP.ColNames[r] != "regret" {
		t.Fatalf("Expected trailing regret column, got %q", pm.LP.ColNames[r])
	}
	// profit_wet + R >= 180000, profit_dry + R >= 166000
	wantIdeals := []float64{180000, 166000}
	for i, row := range []int{baseRows, baseRows + 1} {
		if got := rowCoeff(pm.LP, row, r); got != 1 {
			t.Errorf("Row %d: expected coefficient 1 on regret, got %v", row, got)
		}
		if pm.LP.RowLower[row] != wantIdeals[i] {
			t.Errorf("Row %d: expected ideal bound %v, got %v", row, wantIdeals[i], pm.LP.RowLower[row])
		}
	}
	if pm.LP.Maximize || objectiveCoeff(pm.LP, r) != 1 {
		t.Errorf("Objective should minimize regret alone")
	}
}

func TestMinmaxRegretAuxFailure(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	solver := &stubSolver{results: []*lp.Result{{Status: lp.StatusInfeasible}}}

	err := strategies["minmax_regret"](pm, DefaultParams(), solver)
	if !errors.Is(err, lp.ErrInfeasible) {
		t.Errorf("Expected auxiliary infeasibility to propagate, got %v", err)
	}
}

func TestMultiWeighted(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	p := DefaultParams()
	p.WWet = 0.7
	p.WDry = 0.3
	if err := strategies["multi_weighted"](pm, p, nil); err != nil {
		t.Fatal(err)
	}
	if pm.LP.NumCols() != 12 {
		t.Errorf("No imbalance column expected with lambda 0, got %d columns", pm.LP.NumCols())
	}
	// acres A: 0.7*(-200) + 0.3*(-350) = -245
	if got := objectiveCoeff(pm.LP, pm.Acres[0]); math.Abs(got+245) > 1e-9 {
		t.Errorf("Expected weighted coefficient -245, got %v", got)
	}
}

func TestMultiWeightedImbalance(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	baseRows := pm.LP.NumRows()
	p := DefaultParams()
	p.RiskLambda = 0.1
	if err := strategies["multi_weighted"](pm, p, nil); err != nil {
		t.Fatal(err)
	}

	d := pm.LP.NumCols() - 1
	if pm.LP.ColNames[d] != "imbalance" {
		t.Fatalf("Expected imbalance column, got %q", pm.LP.ColNames[d])
	}
	if pm.LP.NumRows() != baseRows+2 {
		t.Errorf("Expected 2 absolute-value rows, got %d extra", pm.LP.NumRows()-baseRows)
	}
	if got := objectiveCoeff(pm.LP, d); got != -0.1 {
		t.Errorf("Expected penalty -0.1 on imbalance, got %v", got)
	}
	// First row is D - profit_wet + profit_dry >= 0; on acres A that is
	// -(-200) + (-350) = -150.
	if got := rowCoeff(pm.LP, baseRows, pm.Acres[0]); math.Abs(got+150) > 1e-9 {
		t.Errorf("Expected difference coefficient -150, got %v", got)
	}
}

func TestMultiEpsFloors(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	baseRows := pm.LP.NumRows()
	p := DefaultParams()
	p.EpsWet = 120000
	if err := strategies["multi_eps"](pm, p, nil); err != nil {
		t.Fatal(err)
	}
	if pm.LP.NumRows() != baseRows+1 {
		t.Fatalf("Expected one floor row, got %d extra", pm.LP.NumRows()-baseRows)
	}
	if pm.LP.RowLower[baseRows] != 120000 {
		t.Errorf("Expected floor 120000, got %v", pm.LP.RowLower[baseRows])
	}
	if got := rowCoeff(pm.LP, baseRows, pm.Acres[0]); got != -200 {
		t.Errorf("Floor row should carry the wet profit coefficients, got %v", got)
	}
}

func TestTchebycheff(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	baseRows := pm.LP.NumRows()
	baseCols := pm.LP.NumCols()
	solver := &stubSolver{results: cornerResults(inst)}

	if err := strategies["multi_tchebycheff"](pm, DefaultParams(), solver); err != nil {
		t.Fatal(err)
	}
	if len(solver.models) != 2 {
		t.Fatalf("Expected 2 auxiliary solves, got %d", len(solver.models))
	}

	// Columns: t, nshort_wet, nshort_dry.
	tCol := baseCols
	sWet, sDry := baseCols+1, baseCols+2
	if pm.LP.ColNames[tCol] != "t" || pm.LP.ColNames[sWet] != "nshort_wet" || pm.LP.ColNames[sDry] != "nshort_dry" {
		t.Fatalf("Unexpected columns: %v", pm.LP.ColNames[baseCols:])
	}

	// excellent_wet=180000, okay_wet=max(50000, floor)=50000, gap 130000.
	// excellent_dry=166000, okay_dry=max(100000, floor)=100000, gap 66000.
	defWet := baseRows
	if pm.LP.RowLower[defWet] != 180000 || pm.LP.RowUpper[defWet] != 180000 {
		t.Errorf("Wet definition row bounds: %v..%v", pm.LP.RowLower[defWet], pm.LP.RowUpper[defWet])
	}
	if got := rowCoeff(pm.LP, defWet, sWet); math.Abs(got-130000) > 1e-6 {
		t.Errorf("Expected wet gap 130000, got %v", got)
	}
	defDry := baseRows + 2
	if got := rowCoeff(pm.LP, defDry, sDry); math.Abs(got-66000) > 1e-6 {
		t.Errorf("Expected dry gap 66000, got %v", got)
	}

	// Domination rows: t - alpha*S >= 0.
	for _, row := range []int{baseRows + 1, baseRows + 3} {
		if got := rowCoeff(pm.LP, row, tCol); got != 1 {
			t.Errorf("Row %d: expected coefficient 1 on t, got %v", row, got)
		}
	}
	if got := rowCoeff(pm.LP, baseRows+1, sWet); got != -1 {
		t.Errorf("Expected -alpha_wet on S_wet, got %v", got)
	}

	// Objective: minimize t + rho*(S_wet + S_dry).
	if pm.LP.Maximize {
		t.Errorf("Chebyshev phase two should minimize")
	}
	if objectiveCoeff(pm.LP, tCol) != 1 {
		t.Errorf("Expected coefficient 1 on t")
	}
	if objectiveCoeff(pm.LP, sWet) != 0.001 || objectiveCoeff(pm.LP, sDry) != 0.001 {
		t.Errorf("Expected rho 0.001 on both shortfalls, got %v %v",
			objectiveCoeff(pm.LP, sWet), objectiveCoeff(pm.LP, sDry))
	}
}

func TestTchebycheffAlpha(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	baseRows := pm.LP.NumRows()
	baseCols := pm.LP.NumCols()
	p := DefaultParams()
	p.AlphaWet = 2
	p.AlphaDry = 0.5
	solver := &stubSolver{results: cornerResults(inst)}

	if err := strategies["multi_tchebycheff"](pm, p, solver); err != nil {
		t.Fatal(err)
	}
	if got := rowCoeff(pm.LP, baseRows+1, baseCols+1); got != -2 {
		t.Errorf("Expected -alpha_wet = -2, got %v", got)
	}
	if got := rowCoeff(pm.LP, baseRows+3, baseCols+2); got != -0.5 {
		t.Errorf("Expected -alpha_dry = -0.5, got %v", got)
	}
}

func TestTchebycheffDegenerateLevels(t *testing.T) {
	inst := DefaultInstance()
	// A floor above both ideals collapses the excellent-okay gap.
	inst.MinProfit = 500000
	pm := inst.NewModel()
	solver := &stubSolver{results: cornerResults(inst)}

	if err := strategies["multi_tchebycheff"](pm, DefaultParams(), solver); err == nil {
		t.Errorf("Expected degenerate-levels error")
	}
}

func TestSolveUnknownStrategy(t *testing.T) {
	inst := DefaultInstance()
	solver := &stubSolver{}
	if _, err := inst.Solve("tchebycheff", DefaultParams(), solver); err == nil {
		t.Errorf("Expected configuration error for unknown strategy")
	}
	if len(solver.models) != 0 {
		t.Errorf("Solver must not be invoked for an unknown strategy")
	}
}

func TestSolveReportsInfeasible(t *testing.T) {
	inst := DefaultInstance()
	solver := &stubSolver{results: []*lp.Result{{Status: lp.StatusInfeasible}}}

	_, err := inst.Solve("both", DefaultParams(), solver)
	if !errors.Is(err, lp.ErrInfeasible) {
		t.Errorf("Expected ErrInfeasible, got %v", err)
	}
}

func TestSolveExtractsPlan(t *testing.T) {
	inst := DefaultInstance()
	pm := inst.NewModel()
	x := cornerPlan(pm, 0)
	solver := &stubSolver{results: []*lp.Result{
		{Status: lp.StatusOptimal, ColValues: x, Objective: 280000},
	}}

	pl, err := inst.Solve("both", DefaultParams(), solver)
	if err != nil {
		t.Fatal(err)
	}
	if pl.Strategy != "both" || pl.Solver != "stub" {
		t.Errorf("Unexpected labels: %s %s", pl.Strategy, pl.Solver)
	}
	if pl.Profits[Wet] != 180000 || pl.Profits[Dry] != 100000 {
		t.Errorf("Unexpected profits: %v", pl.Profits)
	}
	if pl.Profits[Wet]+pl.Profits[Dry] != pl.Objective {
		t.Errorf("Objective should equal the profit sum for 'both'")
	}
}
