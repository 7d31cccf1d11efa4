package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tendril/pkg/generator"
)

// KindsMarkdown documents every generator kind and its ports as a markdown table.
func KindsMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Generators\n\n")
	sb.WriteString("| Kind | Ports | Description |\n")
	sb.WriteString("|---|---|---|\n")

	for _, k := range generator.Kinds() {
		g, err := generator.New(k, generator.Env{})
		if err != nil {
			continue
		}
		ports := make([]string, 0, len(g.Ports()))
		for _, p := range g.Ports() {
			ports = append(ports, fmt.Sprintf("`%s`=%v", p.Name(), p.Value()))
		}
		name := strings.Join(k.Aliases(), " / ")
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", name, strings.Join(ports, " "), k.Description())
	}
	return sb.String()
}
