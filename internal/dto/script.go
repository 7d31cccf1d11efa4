package dto

import "github.com/aretw0/tendril/pkg/domain"

// ScriptEntry is one decoded statement of a script document.
// It accepts both the current keys and the legacy ones
// (gen-decl/wire-expr actions, type, params).
type ScriptEntry struct {
	Action string `json:"action,omitempty" yaml:"action,omitempty" mapstructure:"action"`

	// Declarations
	Kind   string         `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	Type   string         `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Name   string         `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Ports  map[string]any `json:"ports,omitempty" yaml:"ports,omitempty" mapstructure:"ports"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`

	// Connections. Endpoints accept {generator, port} or "generator.port".
	From domain.Endpoint `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	To   domain.Endpoint `json:"to,omitempty" yaml:"to,omitempty" mapstructure:"to"`
}

// ScriptDocument is the mapping form of a script: {statements: [...]}.
// A bare list of entries is accepted as well.
type ScriptDocument struct {
	Statements []map[string]any `json:"statements" yaml:"statements" mapstructure:"statements"`
}
