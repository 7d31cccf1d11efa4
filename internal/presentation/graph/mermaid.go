package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tendril/pkg/domain"
)

// GraphOverlay contains runtime data to visualize on the graph.
type GraphOverlay struct {
	// Loops lists feedback loops as port IDs ("gen.port").
	Loops [][]string
	// Failed names a generator that aborted the last tick.
	Failed string
}

// GenerateMermaid produces a Mermaid flowchart of the generators in snap.
// Shapes follow the generator role:
// - Sources (Tick, Trig, Value, Beats, Gate): ((Circle))
// - Drawing (Pixel, Line, Clear, Rotate): [[Subroutine]]
// - Log: [/Parallelogram/]
// - Default: [Rectangle]
// Each edge is labeled with its source and destination ports.
func GenerateMermaid(snap domain.Snapshot, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, g := range snap.Generators {
		opener, closer := shape(g.Kind)
		fmt.Fprintf(&sb, "    %s%s\"%s <br/> %s\"%s\n", sanitizeMermaidID(g.Name), opener, g.Name, g.Kind, closer)
	}

	for _, e := range snap.Edges {
		label := strings.ReplaceAll(e.From.Port+" → "+e.To.Port, "\"", "'")
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(e.From.Generator), label, sanitizeMermaidID(e.To.Generator))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef loop fill:#fff3e0,stroke:#e65100,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, loop := range overlay.Loops {
			for _, id := range loop {
				gen, _, _ := strings.Cut(id, ".")
				safeID := sanitizeMermaidID(gen)
				if !seen[safeID] && safeID != "" {
					seen[safeID] = true
					fmt.Fprintf(&sb, "    class %s loop;\n", safeID)
				}
			}
		}

		if overlay.Failed != "" {
			fmt.Fprintf(&sb, "    class %s failed;\n", sanitizeMermaidID(overlay.Failed))
		}
	}

	return sb.String()
}

func shape(kind string) (string, string) {
	switch kind {
	case "Tick", "Trig", "Value", "Beats", "Gate":
		return "((", "))"
	case "Pixel", "Line", "Clear", "Rotate":
		return "[[", "]]"
	case "Log":
		return "[/", "/]"
	}
	return "[", "]"
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
