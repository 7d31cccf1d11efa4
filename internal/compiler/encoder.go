package compiler

import (
	"fmt"

	"github.com/aretw0/tendril/pkg/domain"
	"gopkg.in/yaml.v3"
)

type entry struct {
	Action string         `yaml:"action"`
	Kind   string         `yaml:"kind,omitempty"`
	Name   string         `yaml:"name,omitempty"`
	Ports  map[string]any `yaml:"ports,omitempty"`
	From   string         `yaml:"from,omitempty"`
	To     string         `yaml:"to,omitempty"`
}

// Encode renders statements as a YAML script that Parse reads back.
func Encode(stmts []domain.Statement) ([]byte, error) {
	entries := make([]entry, 0, len(stmts))
	for i, stmt := range stmts {
		switch s := stmt.(type) {
		case domain.Declaration:
			entries = append(entries, entry{Action: domain.ActionDeclare, Kind: s.Kind, Name: s.Name, Ports: s.Ports})
		case domain.Connection:
			entries = append(entries, entry{Action: domain.ActionConnect, From: s.From.String(), To: s.To.String()})
		default:
			return nil, fmt.Errorf("statement %d: %w: %T", i, domain.ErrMalformedStatement, stmt)
		}
	}
	return yaml.Marshal(entries)
}
