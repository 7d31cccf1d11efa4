package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/tendril/internal/compiler"
	"github.com/aretw0/tendril/pkg/domain"
)

// Builder accumulates statements in call order.
type Builder struct {
	stmts []domain.Statement
	errs  []error
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// PortValue is an initial port value for Declare.
type PortValue struct {
	Port  string
	Value any
}

// Set returns an initial value for port.
func Set(port string, value any) PortValue {
	return PortValue{Port: port, Value: value}
}

// Declare appends a declaration of a kind generator called name.
func (b *Builder) Declare(kind, name string, values ...PortValue) *Builder {
	d := domain.Declaration{Kind: kind, Name: name}
	if len(values) > 0 {
		d.Ports = make(map[string]any, len(values))
		for _, v := range values {
			d.Ports[v.Port] = v.Value
		}
	}
	b.stmts = append(b.stmts, d)
	return b
}

// Connect appends a connection between two "generator.port" endpoints.
func (b *Builder) Connect(from, to string) *Builder {
	src, err := domain.ParseEndpoint(from)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("connect %s -> %s: %w", from, to, err))
		return b
	}
	dst, err := domain.ParseEndpoint(to)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("connect %s -> %s: %w", from, to, err))
		return b
	}
	b.stmts = append(b.stmts, domain.Connection{From: src, To: dst})
	return b
}

// Build returns the accumulated statements. It fails if an endpoint could
// not be parsed; lookups are left to the engine.
func (b *Builder) Build() ([]domain.Statement, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	out := make([]domain.Statement, len(b.stmts))
	copy(out, b.stmts)
	return out, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() []domain.Statement {
	stmts, err := b.Build()
	if err != nil {
		panic(err)
	}
	return stmts
}

// Script renders the statements as a YAML script.
func (b *Builder) Script() ([]byte, error) {
	stmts, err := b.Build()
	if err != nil {
		return nil, err
	}
	return compiler.Encode(stmts)
}
