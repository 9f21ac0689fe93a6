package lp

import (
	"errors"
	"fmt"
	"sort"
)

type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	}
	return "error"
}

var (
	ErrInfeasible        = errors.New("model is infeasible")
	ErrUnbounded         = errors.New("model is unbounded")
	ErrSolverUnavailable = errors.New("solver unavailable")
)

// Result is the outcome of one solve. ColValues and Objective are only
// meaningful when Status is StatusOptimal.
type Result struct {
	Status    Status
	ColValues []float64
	Objective float64
}

// Err maps a non-optimal status to its sentinel error.
func (r *Result) Err() error {
	switch r.Status {
	case StatusOptimal:
		return nil
	case StatusInfeasible:
		return ErrInfeasible
	case StatusUnbounded:
		return ErrUnbounded
	}
	return errors.New("solver error")
}

// Solver runs one blocking solve per call. The backend problem is built,
// solved and released inside Solve; no state survives between calls.
type Solver interface {
	Name() string
	Solve(m *Model) (*Result, error)
}

var backends = map[string]func() Solver{
	"highs":   func() Solver { return highsSolver{} },
	"glpk":    func() Solver { return glpkSolver{} },
	"lpsolve": func() Solver { return lpsolveSolver{} },
}

// New returns the backend registered under the given name.
func New(name string) (Solver, error) {
	mk, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q (available: %v)", name, Names())
	}
	return mk(), nil
}

func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
