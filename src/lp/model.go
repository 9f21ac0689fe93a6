// Package lp holds a small solver-agnostic linear model representation.
// Models are built column by column and row by row, then handed to one of
// the backends in this package for a single blocking solve.
package lp

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

type Nonzero struct {
	Row, Col int
	Val      float64
}

// Model is a linear (or mixed-integer) program:
//
//	min/max  ColCosts . x + Offset
//	s.t.     RowLower <= A x <= RowUpper
//	         ColLower <= x <= ColUpper
type Model struct {
	Maximize bool
	Offset   float64
	ColCosts []float64
	ColLower []float64
	ColUpper []float64
	Integer  []bool
	ColNames []string
	RowLower []float64
	RowUpper []float64
	Matrix   []Nonzero
}

func (m *Model) NumCols() int {
	return len(m.ColLower)
}

func (m *Model) NumRows() int {
	return len(m.RowLower)
}

// AddCol appends a continuous column and returns its index.
func (m *Model) AddCol(name string, lower, upper float64) int {
	j := m.NumCols()
	m.ColNames = append(m.ColNames, name)
	m.ColLower = append(m.ColLower, lower)
	m.ColUpper = append(m.ColUpper, upper)
	m.ColCosts = append(m.ColCosts, 0)
	m.Integer = append(m.Integer, false)
	return j
}

// AddIntCol appends an integer column and returns its index.
func (m *Model) AddIntCol(name string, lower, upper float64) int {
	j := m.AddCol(name, lower, upper)
	m.Integer[j] = true
	return j
}

func (m *Model) HasInteger() bool {
	return slices.Contains(m.Integer, true)
}

// AddDenseRow appends the constraint lower <= coeffs . x <= upper,
// skipping zero coefficients, and returns the row index.
func (m *Model) AddDenseRow(lower float64, coeffs []float64, upper float64) int {
	i := m.NumRows()
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)
	for j, v := range coeffs {
		if v != 0 {
			m.Matrix = append(m.Matrix, Nonzero{Row: i, Col: j, Val: v})
		}
	}
	return i
}

// AddExprRow appends the constraint lower <= e <= upper, folding the
// expression's constant term into the row bounds.
func (m *Model) AddExprRow(lower float64, e *Expr, upper float64) int {
	if !math.IsInf(lower, -1) {
		lower -= e.Const
	}
	if !math.IsInf(upper, 1) {
		upper -= e.Const
	}
	return m.AddDenseRow(lower, e.Coeffs, upper)
}

// SetObjective replaces the objective with the given expression and sense.
func (m *Model) SetObjective(e *Expr, maximize bool) {
	m.ColCosts = make([]float64, m.NumCols())
	copy(m.ColCosts, e.Coeffs)
	m.Offset = e.Const
	m.Maximize = maximize
}

func (m *Model) Clone() *Model {
	return &Model{
		Maximize: m.Maximize,
		Offset:   m.Offset,
		ColCosts: slices.Clone(m.ColCosts),
		ColLower: slices.Clone(m.ColLower),
		ColUpper: slices.Clone(m.ColUpper),
		Integer:  slices.Clone(m.Integer),
		ColNames: slices.Clone(m.ColNames),
		RowLower: slices.Clone(m.RowLower),
		RowUpper: slices.Clone(m.RowUpper),
		Matrix:   slices.Clone(m.Matrix),
	}
}

// Expr is an affine expression over model columns.
type Expr struct {
	Coeffs []float64
	Const  float64
}

func NewExpr() *Expr {
	return &Expr{}
}

func (e *Expr) grow(n int) {
	if len(e.Coeffs) < n {
		e.Coeffs = append(e.Coeffs, make([]float64, n-len(e.Coeffs))...)
	}
}

// Add accumulates coef onto the given column's coefficient.
func (e *Expr) Add(col int, coef float64) *Expr {
	e.grow(col + 1)
	e.Coeffs[col] += coef
	return e
}

// AddScaled accumulates k*o onto e.
func (e *Expr) AddScaled(o *Expr, k float64) *Expr {
	e.grow(len(o.Coeffs))
	for j, v := range o.Coeffs {
		e.Coeffs[j] += k * v
	}
	e.Const += k * o.Const
	return e
}

func (e *Expr) Clone() *Expr {
	return &Expr{Coeffs: slices.Clone(e.Coeffs), Const: e.Const}
}

// Eval computes the expression's value at the given point. The point may
// have more columns than the expression mentions.
func (e *Expr) Eval(x []float64) float64 {
	n := min(len(e.Coeffs), len(x))
	return floats.Dot(e.Coeffs[:n], x[:n]) + e.Const
}
