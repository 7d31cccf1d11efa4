// Package validator checks a script without running it: it must parse and
// build, and suspicious wiring is reported as warnings.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/tendril/internal/compiler"
	"github.com/aretw0/tendril/internal/runtime"
	"github.com/aretw0/tendril/pkg/generator"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/aretw0/tendril/pkg/registry"
)

// Report summarizes a script that built successfully.
type Report struct {
	Statements int
	Generators int
	Edges      int
	Loops      [][]string
	Warnings   []string
}

// ValidateScript parses and dry-runs data. Build errors are returned as is
// (a *domain.BuildError); everything else ends up in the report.
func ValidateScript(data []byte, maxDepth int) (Report, error) {
	stmts, err := compiler.NewParser().Parse(data)
	if err != nil {
		return Report{}, err
	}

	reg, err := runtime.NewBuilder(generator.Env{}, runtime.WithBuildDepth(maxDepth)).Build(stmts)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Statements: len(stmts),
		Generators: reg.Len(),
		Edges:      len(reg.Edges()),
		Loops:      runtime.Cycles(reg),
	}
	r.Warnings = warnings(reg, r.Loops, maxDepth)
	return r, nil
}

func warnings(reg *registry.Registry, loops [][]string, maxDepth int) []string {
	var out []string

	touched := make(map[string]bool)
	for _, e := range reg.Edges() {
		touched[e.From.Generator] = true
		touched[e.To.Generator] = true
	}

	_ = reg.Each(func(name string, g generator.Generator) error {
		switch {
		case g.Kind() == generator.KindLog && !touched[name]:
			out = append(out, fmt.Sprintf("%s: Log has no wired ports and prints nothing", name))
		case !touched[name] && !selfContained(g.Kind()):
			out = append(out, fmt.Sprintf("%s: %s is not connected to anything", name, g.Kind()))
		}
		return nil
	})

	laps := maxDepth
	if laps <= 0 {
		laps = port.DefaultMaxDepth
	}
	for _, loop := range loops {
		out = append(out, fmt.Sprintf("feedback loop %s (propagation stops after %d laps)", strings.Join(loop, " -> "), laps))
	}
	return out
}

// selfContained kinds do something visible without any wiring.
func selfContained(k generator.Kind) bool {
	switch k {
	case generator.KindPixel, generator.KindLine, generator.KindClear, generator.KindRotate:
		return true
	}
	return false
}
