package lp

import (
	"fmt"
	"math"
	"slices"

	"github.com/draffensperger/golp"
)

type lpsolveSolver struct{}

func (lpsolveSolver) Name() string { return "lpsolve" }

// lp_solve columns are fixed at [0, +inf); other bounds are emitted as
// single-entry constraint rows. Negative lower bounds cannot be expressed
// that way, so models carrying them are rejected up front.
func (lpsolveSolver) Solve(m *Model) (*Result, error) {
	for j, lo := range m.ColLower {
		if lo < 0 {
			return nil, fmt.Errorf("lpsolve: column %s has negative lower bound %v", m.ColNames[j], lo)
		}
	}

	n := m.NumCols()
	prob := golp.NewLP(0, n)
	for j := 0; j < n; j++ {
		prob.SetColName(j, m.ColNames[j])
		if m.Integer[j] {
			prob.SetInt(j, true)
		}
	}

	rows := make([][]golp.Entry, m.NumRows())
	for _, nz := range m.Matrix {
		rows[nz.Row] = append(rows[nz.Row], golp.Entry{Col: nz.Col, Val: nz.Val})
	}
	for i, entries := range rows {
		lo, up := m.RowLower[i], m.RowUpper[i]
		if lo == up {
			prob.AddConstraintSparse(entries, golp.EQ, lo)
			continue
		}
		if !math.IsInf(lo, -1) {
			prob.AddConstraintSparse(entries, golp.GE, lo)
		}
		if !math.IsInf(up, 1) {
			prob.AddConstraintSparse(entries, golp.LE, up)
		}
	}
	for j := 0; j < n; j++ {
		self := []golp.Entry{{Col: j, Val: 1}}
		if m.ColLower[j] > 0 {
			prob.AddConstraintSparse(self, golp.GE, m.ColLower[j])
		}
		if !math.IsInf(m.ColUpper[j], 1) {
			prob.AddConstraintSparse(self, golp.LE, m.ColUpper[j])
		}
	}

	obj := make([]float64, n)
	copy(obj, m.ColCosts)
	prob.SetObjFn(obj)
	if m.Maximize {
		prob.SetMaximize()
	}

	switch ret := prob.Solve(); ret {
	case golp.OPTIMAL, golp.SUBOPTIMAL:
		return &Result{
			Status:    StatusOptimal,
			ColValues: slices.Clone(prob.Variables()),
			Objective: prob.Objective() + m.Offset,
		}, nil
	case golp.INFEASIBLE:
		return &Result{Status: StatusInfeasible}, nil
	case golp.UNBOUNDED:
		return &Result{Status: StatusUnbounded}, nil
	default:
		return &Result{Status: StatusError}, fmt.Errorf("lpsolve: solve returned %v", ret)
	}
}
