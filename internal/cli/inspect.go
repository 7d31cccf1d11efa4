package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/internal/presentation/graph"
	"github.com/aretw0/tendril/internal/presentation/tui"
	"github.com/aretw0/tendril/internal/validator"
	"github.com/aretw0/tendril/pkg/adapters/file"
)

// Validate checks the script at path and prints its report to w.
func Validate(path string, maxDepth int, w io.Writer) error {
	data, err := file.Load(path)
	if err != nil {
		return err
	}
	report, err := validator.ValidateScript(data, maxDepth)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d statements, %d generators, %d edges\n",
		path, report.Statements, report.Generators, report.Edges)
	for _, warn := range report.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
	return nil
}

// Graph builds the script at path without running it and writes its Mermaid
// diagram to w, with feedback loops highlighted.
func Graph(path string, maxDepth int, w io.Writer) error {
	data, err := file.Load(path)
	if err != nil {
		return err
	}
	eng := tendril.New(tendril.WithMaxDepth(maxDepth), tendril.WithName(path))
	if err := eng.RebuildScript(context.Background(), data); err != nil {
		return err
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(eng.Inspect(), &graph.GraphOverlay{Loops: eng.Cycles()}))
	return err
}

// Kinds writes the generator reference, rendered for the terminal when
// pretty is set.
func Kinds(w io.Writer, pretty bool) error {
	md := tui.KindsMarkdown()
	if pretty {
		out, err := tui.NewRenderer()(md)
		if err == nil {
			md = out
		}
	}
	_, err := io.WriteString(w, md)
	return err
}
