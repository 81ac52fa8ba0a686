package pipeline

import (
	"container/heap"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/handler"
)

// Order sorts handlers so every handler follows the handlers it depends on.
// Among handlers that are free to run, registration order wins, so an
// already valid registration is returned unchanged.
func Order(handlers []handler.Handler) ([]handler.Handler, error) {
	index := make(map[string]int, len(handlers))
	for i, h := range handlers {
		if _, dup := index[h.ID()]; dup {
			return nil, api.Configf("duplicate setting %q", h.ID())
		}
		index[h.ID()] = i
	}

	indeg := make([]int, len(handlers))
	outgoing := make([][]int, len(handlers))
	for i, h := range handlers {
		for _, dep := range h.DependsOn() {
			d, ok := index[dep]
			if !ok {
				return nil, api.Configf("setting %q depends on unknown setting %q", h.ID(), dep)
			}
			outgoing[d] = append(outgoing[d], i)
			indeg[i]++
		}
	}

	order := topoOrder(indeg, outgoing)
	if len(order) != len(handlers) {
		cycle := findCycle(outgoing)
		names := make([]string, len(cycle))
		for i, n := range cycle {
			names[i] = handlers[n].ID()
		}
		return nil, api.Configf("dependency cycle: %s", strings.Join(names, " -> "))
	}

	out := make([]handler.Handler, len(order))
	for i, n := range order {
		out[i] = handlers[n]
	}
	return out, nil
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrder is Kahn's algorithm with a min-heap ready queue keyed by
// registration index.
func topoOrder(indeg []int, outgoing [][]int) []int {
	indeg = append([]int(nil), indeg...)

	ready := &intMinHeap{}
	heap.Init(ready)
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, m := range outgoing[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	return out
}

// findCycle returns one cycle as a closed path of indices, first node
// repeated at the end. The walk visits indices in order so the witness is
// stable.
func findCycle(outgoing [][]int) []int {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(outgoing))
	parent := make([]int, len(outgoing))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int
	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range outgoing[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// Back edge u -> v: walk parents from u back to v.
				cycle = append(cycle, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range outgoing {
		if color[i] == white && dfs(i) {
			break
		}
	}

	for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}
	return cycle
}
