package runtime

import (
	"sort"

	"github.com/aretw0/tendril/pkg/generator"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/aretw0/tendril/pkg/registry"
)

// Cycles returns the port-level feedback loops of reg as lists of port IDs.
// A loop is a strongly connected component of the subscriber graph with more
// than one port, or a port subscribed to itself. Ports inside a loop and the
// loops themselves follow registration order.
func Cycles(reg *registry.Registry) [][]string {
	var order []*port.Port
	_ = reg.Each(func(_ string, g generator.Generator) error {
		order = append(order, g.Ports()...)
		return nil
	})

	t := &tarjan{
		index: make(map[*port.Port]int),
		low:   make(map[*port.Port]int),
		on:    make(map[*port.Port]bool),
	}
	for _, p := range order {
		if _, seen := t.index[p]; !seen {
			t.visit(p)
		}
	}

	rank := make(map[*port.Port]int, len(order))
	for i, p := range order {
		rank[p] = i
	}
	for _, comp := range t.comps {
		sort.Slice(comp, func(i, j int) bool { return rank[comp[i]] < rank[comp[j]] })
	}
	sort.Slice(t.comps, func(i, j int) bool { return rank[t.comps[i][0]] < rank[t.comps[j][0]] })

	loops := make([][]string, len(t.comps))
	for i, comp := range t.comps {
		ids := make([]string, len(comp))
		for j, p := range comp {
			ids[j] = p.ID()
		}
		loops[i] = ids
	}
	return loops
}

// tarjan finds strongly connected components.
type tarjan struct {
	next  int
	index map[*port.Port]int
	low   map[*port.Port]int
	on    map[*port.Port]bool
	stack []*port.Port
	comps [][]*port.Port
}

func (t *tarjan) visit(p *port.Port) {
	t.index[p] = t.next
	t.low[p] = t.next
	t.next++
	t.stack = append(t.stack, p)
	t.on[p] = true

	self := false
	for _, sub := range p.Subscribers() {
		if sub == p {
			self = true
		}
		if _, seen := t.index[sub]; !seen {
			t.visit(sub)
			t.low[p] = min(t.low[p], t.low[sub])
		} else if t.on[sub] {
			t.low[p] = min(t.low[p], t.index[sub])
		}
	}

	if t.low[p] != t.index[p] {
		return
	}

	var comp []*port.Port
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.on[top] = false
		comp = append(comp, top)
		if top == p {
			break
		}
	}
	if len(comp) > 1 || self {
		t.comps = append(t.comps, comp)
	}
}
