package lp

import (
	"fmt"
	"slices"

	"github.com/lanl/highs"
)

type highsSolver struct{}

func (highsSolver) Name() string { return "highs" }

func (highsSolver) Solve(m *Model) (*Result, error) {
	hm := new(highs.Model)
	hm.Maximize = m.Maximize
	hm.Offset = m.Offset
	hm.ColCosts = slices.Clone(m.ColCosts)
	hm.ColLower = slices.Clone(m.ColLower)
	hm.ColUpper = slices.Clone(m.ColUpper)
	hm.RowLower = slices.Clone(m.RowLower)
	hm.RowUpper = slices.Clone(m.RowUpper)

	hm.ConstMatrix = make([]highs.Nonzero, len(m.Matrix))
	for i, nz := range m.Matrix {
		hm.ConstMatrix[i] = highs.Nonzero{Row: nz.Row, Col: nz.Col, Val: nz.Val}
	}

	if m.HasInteger() {
		hm.VarTypes = make([]highs.VariableType, m.NumCols())
		for j, isInt := range m.Integer {
			if isInt {
				hm.VarTypes[j] = highs.IntegerType
			}
		}
	}

	solution, err := hm.Solve()
	if err != nil {
		return nil, fmt.Errorf("%w: highs: %v", ErrSolverUnavailable, err)
	}

	switch solution.Status {
	case highs.Optimal:
		return &Result{
			Status:    StatusOptimal,
			ColValues: slices.Clone(solution.ColumnPrimal),
			Objective: solution.Objective,
		}, nil
	case highs.Infeasible:
		return &Result{Status: StatusInfeasible}, nil
	case highs.Unbounded, highs.UnboundedOrInfeasible:
		return &Result{Status: StatusUnbounded}, nil
	}
	return &Result{Status: StatusError}, fmt.Errorf("highs: status %v", solution.Status.String())
}
