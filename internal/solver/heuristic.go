package solver

import (
	"context"
	"sort"
)

// HeuristicBackend is a deterministic pure-Go fallback: it admits variables
// in descending weight order whenever every constraint still has headroom.
// The selection is always feasible but is not guaranteed optimal, even on
// small models, so its objective is a lower bound on the optimum.
type HeuristicBackend struct{}

func (b *HeuristicBackend) Name() string { return "heuristic" }

func (b *HeuristicBackend) Solve(ctx context.Context, m *Model, _ Options) (*Result, error) {
	remaining := make([]int, len(m.Cons))
	consByVar := make([][]int, len(m.Vars))
	for ci, con := range m.Cons {
		remaining[ci] = con.Bound
		for _, vi := range con.Vars {
			consByVar[vi] = append(consByVar[vi], ci)
		}
	}

	order := make([]int, len(m.Vars))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if m.Vars[order[a]].Weight != m.Vars[order[b]].Weight {
			return m.Vars[order[a]].Weight > m.Vars[order[b]].Weight
		}
		return order[a] < order[b]
	})

	result := &Result{Selected: make([]bool, len(m.Vars))}
	for _, vi := range order {
		if err := ctx.Err(); err != nil {
			break
		}
		fits := true
		for _, ci := range consByVar[vi] {
			if remaining[ci] <= 0 {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}
		for _, ci := range consByVar[vi] {
			remaining[ci]--
		}
		result.Selected[vi] = true
		result.Objective += m.Vars[vi].Weight
	}
	return result, nil
}
