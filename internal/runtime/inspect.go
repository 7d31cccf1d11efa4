package runtime

import (
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
)

// Inspect describes the live graph. Values are read without synchronization
// with Tick; callers that need a consistent view run it between ticks.
func (e *Engine) Inspect() domain.Snapshot {
	snap := domain.Snapshot{
		Frame:      e.Frame(),
		Generators: []domain.GeneratorView{},
		Edges:      []domain.Edge{},
	}
	if err := e.Err(); err != nil {
		snap.LastError = err.Error()
	}

	g := e.Graph()
	if g == nil {
		return snap
	}
	snap.BuildID = g.ID

	_ = g.Registry.Each(func(name string, gen generator.Generator) error {
		view := domain.GeneratorView{Name: name, Kind: gen.Kind().String()}
		for _, p := range gen.Ports() {
			view.Ports = append(view.Ports, domain.PortView{
				Name:  p.Name(),
				Value: p.Value(),
				Wired: p.Wired(),
			})
		}
		snap.Generators = append(snap.Generators, view)
		return nil
	})
	if edges := g.Registry.Edges(); edges != nil {
		snap.Edges = edges
	}
	return snap
}
