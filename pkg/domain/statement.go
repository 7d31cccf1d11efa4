package domain

import (
	"fmt"
	"strings"
)

// Action names used by script documents.
const (
	ActionDeclare = "declare"
	ActionConnect = "connect"
)

// Statement is one instruction of a script: either a Declaration or a Connection.
// The set is closed; the unexported marker keeps other packages from adding variants.
type Statement interface {
	Action() string
	fmt.Stringer
	statement()
}

// Declaration instantiates a generator of Kind under Name.
// Ports holds initial values applied as if each port received an immediate update.
type Declaration struct {
	Kind  string         `json:"kind" yaml:"kind"`
	Name  string         `json:"name" yaml:"name"`
	Ports map[string]any `json:"ports,omitempty" yaml:"ports,omitempty"`
}

func (Declaration) Action() string { return ActionDeclare }

func (d Declaration) String() string {
	return fmt.Sprintf("declare %s %s", d.Kind, d.Name)
}

func (Declaration) statement() {}

// Endpoint addresses one port of one generator instance.
type Endpoint struct {
	Generator string `json:"generator" yaml:"generator"`
	Port      string `json:"port" yaml:"port"`
}

// ParseEndpoint parses the "generator.port" shorthand.
func ParseEndpoint(s string) (Endpoint, error) {
	gen, port, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || gen == "" || port == "" {
		return Endpoint{}, fmt.Errorf("%w: endpoint %q must look like generator.port", ErrMalformedStatement, s)
	}
	return Endpoint{Generator: gen, Port: port}, nil
}

func (e Endpoint) String() string {
	return e.Generator + "." + e.Port
}

// Connection wires From (source port) into To (destination port).
type Connection struct {
	From Endpoint `json:"from" yaml:"from"`
	To   Endpoint `json:"to" yaml:"to"`
}

func (Connection) Action() string { return ActionConnect }

func (c Connection) String() string {
	return fmt.Sprintf("connect %s -> %s", c.From, c.To)
}

func (Connection) statement() {}

// Validate checks the statement shape without looking anything up.
func Validate(stmt Statement) error {
	switch s := stmt.(type) {
	case Declaration:
		if s.Kind == "" {
			return fmt.Errorf("%w: declaration without kind", ErrMalformedStatement)
		}
		if s.Name == "" {
			return fmt.Errorf("%w: declaration of %s without name", ErrMalformedStatement, s.Kind)
		}
	case Connection:
		if s.From.Generator == "" || s.From.Port == "" {
			return fmt.Errorf("%w: connection without source", ErrMalformedStatement)
		}
		if s.To.Generator == "" || s.To.Port == "" {
			return fmt.Errorf("%w: connection without destination", ErrMalformedStatement)
		}
	case nil:
		return fmt.Errorf("%w: nil statement", ErrMalformedStatement)
	}
	return nil
}
