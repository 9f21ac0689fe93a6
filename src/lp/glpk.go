package lp

import (
	"fmt"
	"math"

	"github.com/lukpank/go-glpk/glpk"
)

type glpkSolver struct{}

func (glpkSolver) Name() string { return "glpk" }

func glpkBounds(lower, upper float64) (glpk.BndsType, float64, float64) {
	loInf := math.IsInf(lower, -1)
	upInf := math.IsInf(upper, 1)
	switch {
	case loInf && upInf:
		return glpk.FR, 0, 0
	case loInf:
		return glpk.UP, 0, upper
	case upInf:
		return glpk.LO, lower, 0
	case lower == upper:
		return glpk.FX, lower, upper
	}
	return glpk.DB, lower, upper
}

func (glpkSolver) Solve(m *Model) (*Result, error) {
	prob := glpk.New()
	defer prob.Delete()

	if m.Maximize {
		prob.SetObjDir(glpk.MAX)
	} else {
		prob.SetObjDir(glpk.MIN)
	}

	n := m.NumCols()
	prob.AddCols(n)
	prob.SetObjCoef(0, m.Offset)
	for j := 0; j < n; j++ {
		prob.SetColName(j+1, m.ColNames[j])
		prob.SetObjCoef(j+1, m.ColCosts[j])
		bt, lo, up := glpkBounds(m.ColLower[j], m.ColUpper[j])
		prob.SetColBnds(j+1, bt, lo, up)
		if m.Integer[j] {
			prob.SetColKind(j+1, glpk.IV)
		}
	}

	nRows := m.NumRows()
	prob.AddRows(nRows)
	for i := 0; i < nRows; i++ {
		bt, lo, up := glpkBounds(m.RowLower[i], m.RowUpper[i])
		prob.SetRowBnds(i+1, bt, lo, up)
	}

	// Leading dummy entry per SetMatRow's 1-based convention.
	rowInd := make([][]int32, nRows)
	rowVal := make([][]float64, nRows)
	for i := range rowInd {
		rowInd[i] = []int32{0}
		rowVal[i] = []float64{0}
	}
	for _, nz := range m.Matrix {
		rowInd[nz.Row] = append(rowInd[nz.Row], int32(nz.Col+1))
		rowVal[nz.Row] = append(rowVal[nz.Row], nz.Val)
	}
	for i := 0; i < nRows; i++ {
		prob.SetMatRow(i+1, rowInd[i], rowVal[i])
	}

	if m.HasInteger() {
		iocp := glpk.NewIocp()
		iocp.SetPresolve(true)
		iocp.SetMsgLev(glpk.MSG_OFF)
		if err := prob.Intopt(iocp); err != nil {
			return nil, fmt.Errorf("glpk intopt: %w", err)
		}
		return glpkMipResult(prob, n), nil
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MSG_OFF)
	if err := prob.Simplex(smcp); err != nil {
		return nil, fmt.Errorf("glpk simplex: %w", err)
	}

	switch prob.Status() {
	case glpk.OPT:
		values := make([]float64, n)
		for j := 0; j < n; j++ {
			values[j] = prob.ColPrim(j + 1)
		}
		return &Result{Status: StatusOptimal, ColValues: values, Objective: prob.ObjVal()}, nil
	case glpk.NOFEAS, glpk.INFEAS:
		return &Result{Status: StatusInfeasible}, nil
	case glpk.UNBND:
		return &Result{Status: StatusUnbounded}, nil
	}
	return &Result{Status: StatusError}, nil
}

func glpkMipResult(prob *glpk.Prob, n int) *Result {
	switch prob.MipStatus() {
	case glpk.OPT:
		values := make([]float64, n)
		for j := 0; j < n; j++ {
			values[j] = prob.MipColVal(j + 1)
		}
		return &Result{Status: StatusOptimal, ColValues: values, Objective: prob.MipObjVal()}
	case glpk.NOFEAS:
		return &Result{Status: StatusInfeasible}
	}
	return &Result{Status: StatusError}
}
