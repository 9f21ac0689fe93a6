package pricing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/dnaeon/go-priorityqueue.v1"
)

// SolveGreedy starts every product at its best-margin level, then, while
// the total order exceeds capacity, repeatedly downgrades the product
// whose next lower-demand level gives up the least margin per unit of
// demand freed. Returns an error when no sequence of downgrades fits.
func (inst *Instance) SolveGreedy() (*Plan, error) {
	// Level order per product: demand descending.
	order := make([][]int, len(inst.Products))
	pos := make([]int, len(inst.Products))
	picks := make([]int, len(inst.Products))
	demand := make([]float64, len(inst.Products))
	for i := range inst.Products {
		p := &inst.Products[i]
		order[i] = make([]int, len(p.Levels))
		for l := range p.Levels {
			order[i][l] = l
		}
		sort.Slice(order[i], func(a, b int) bool {
			return p.Levels[order[i][a]].Demand > p.Levels[order[i][b]].Demand
		})

		best := 0
		for l := 1; l < len(p.Levels); l++ {
			if p.margin(l) > p.margin(best) {
				best = l
			}
		}
		picks[i] = best
		pos[i] = 0
		for k, l := range order[i] {
			if l == best {
				pos[i] = k
				break
			}
		}
		demand[i] = p.Levels[best].Demand
	}

	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	push := func(i int) {
		if cost, ok := inst.downgradeCost(order, pos, picks, i); ok {
			pq.Put(i, cost)
		}
	}
	for i := range inst.Products {
		push(i)
	}

	for floats.Sum(demand) > inst.Capacity {
		if pq.Len() == 0 {
			return nil, fmt.Errorf("greedy pricing: no downgrade sequence fits capacity %.2f", inst.Capacity)
		}
		item := pq.Get()
		i := item.Value
		pos[i]++
		picks[i] = order[i][pos[i]]
		demand[i] = inst.Products[i].Levels[picks[i]].Demand
		push(i)
	}

	return inst.planFor("greedy", picks), nil
}

// downgradeCost is the margin lost per unit of demand freed by moving
// product i to its next lower-demand level. ok is false when the product
// has no lower-demand level left or the move frees nothing.
func (inst *Instance) downgradeCost(order [][]int, pos, picks []int, i int) (float64, bool) {
	p := &inst.Products[i]
	if pos[i]+1 >= len(order[i]) {
		return 0, false
	}
	cur, next := picks[i], order[i][pos[i]+1]
	freed := p.Levels[cur].Demand - p.Levels[next].Demand
	if freed <= 0 {
		return 0, false
	}
	return (p.margin(cur) - p.margin(next)) / freed, true
}
