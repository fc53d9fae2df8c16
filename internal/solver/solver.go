// Package solver is the narrow boundary between the scheduling pipeline and
// 0/1 MIP backends. The pipeline emits a Model of binary variables and
// sum-at-most bounds; backends return a selection with an objective value.
package solver

import (
	"context"
	"fmt"
	"time"
)

// Var is a binary decision variable: assign Student to Section with the
// given objective weight.
type Var struct {
	Student string
	Section string
	Weight  float64
}

// Con bounds the sum of the referenced variables: Σ vars ≤ Bound.
type Con struct {
	Name  string
	Vars  []int
	Bound int
}

// Model is a maximization 0/1 MIP in the restricted form the pipeline needs.
// Variables and constraints are in canonical order; backends must not
// reorder them.
type Model struct {
	Vars []Var
	Cons []Con
}

// Options tune a single solve call.
type Options struct {
	TimeLimit time.Duration
	MIPGap    float64
	Threads   int
}

// Result carries the selection for each variable in model order.
type Result struct {
	Selected  []bool
	Objective float64
	Gap       float64
	Optimal   bool
}

// Backend solves a Model within the context deadline.
type Backend interface {
	Name() string
	Solve(ctx context.Context, m *Model, opts Options) (*Result, error)
}

// New returns the backend registered under the given name.
func New(name string) (Backend, error) {
	switch name {
	case "", "glpk":
		return &GLPKBackend{}, nil
	case "heuristic":
		return &HeuristicBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown solver backend %q", name)
	}
}
