package runtime

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
	"github.com/aretw0/tendril/pkg/port"
	"github.com/aretw0/tendril/pkg/registry"
	"github.com/aretw0/tendril/pkg/schema"
)

// Builder turns statements into a registry of wired generators.
type Builder struct {
	env      generator.Env
	maxDepth int
	observer port.Observer
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuildDepth sets the cycle lap limit installed on every port.
func WithBuildDepth(n int) BuilderOption {
	return func(b *Builder) {
		b.maxDepth = n
	}
}

// WithObserver installs o on every port to receive value anomalies.
func WithObserver(o port.Observer) BuilderOption {
	return func(b *Builder) {
		b.observer = o
	}
}

// NewBuilder creates a builder whose generators use env.
func NewBuilder(env generator.Env, opts ...BuilderOption) *Builder {
	b := &Builder{env: env, maxDepth: port.DefaultMaxDepth}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build executes stmts in order against a fresh registry.
// The first failing statement aborts the build with a *domain.BuildError;
// the partial registry is discarded.
func (b *Builder) Build(stmts []domain.Statement) (*registry.Registry, error) {
	reg := registry.New()
	for i, stmt := range stmts {
		if err := b.apply(reg, stmt); err != nil {
			return nil, &domain.BuildError{Index: i, Statement: stmt, Err: err}
		}
	}
	return reg, nil
}

func (b *Builder) apply(reg *registry.Registry, stmt domain.Statement) error {
	if err := domain.Validate(stmt); err != nil {
		return err
	}

	switch s := stmt.(type) {
	case domain.Declaration:
		return b.declare(reg, s)
	case domain.Connection:
		return connect(reg, s)
	}
	return fmt.Errorf("%w: unsupported statement %T", domain.ErrMalformedStatement, stmt)
}

func (b *Builder) declare(reg *registry.Registry, d domain.Declaration) error {
	if _, exists := reg.Get(d.Name); exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, d.Name)
	}

	kind, err := generator.ParseKind(d.Kind)
	if err != nil {
		return err
	}
	g, err := generator.New(kind, b.env)
	if err != nil {
		return err
	}

	for _, p := range g.Ports() {
		p.Bind(d.Name)
		p.SetMaxDepth(b.maxDepth)
		if b.observer != nil {
			p.Observe(b.observer)
		}
	}

	if err := schema.Validate(generator.Schema(g), d.Ports); err != nil {
		return portError(kind, d.Name, err)
	}

	keys := make([]string, 0, len(d.Ports))
	for k := range d.Ports {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		p, _ := g.Port(k)
		if err := p.Update(d.Ports[k]); err != nil {
			return err
		}
	}

	return reg.Add(d.Name, g)
}

// portError reports every rejected initial value of one declaration at once,
// classed as ErrUnknownPort, ErrPortType or both.
func portError(kind generator.Kind, name string, err error) error {
	var unknown, mistyped bool
	for _, e := range schema.ValidationErrors(err) {
		if errors.Is(e, schema.ErrUnknownField) {
			unknown = true
		} else {
			mistyped = true
		}
	}
	switch {
	case unknown && mistyped:
		return fmt.Errorf("%w, %w: %s %q: %w", domain.ErrUnknownPort, domain.ErrPortType, kind, name, err)
	case unknown:
		return fmt.Errorf("%w: %s %q: %w", domain.ErrUnknownPort, kind, name, err)
	}
	return fmt.Errorf("%w: %s %q: %w", domain.ErrPortType, kind, name, err)
}

func connect(reg *registry.Registry, c domain.Connection) error {
	src, err := lookup(reg, c.From)
	if err != nil {
		return err
	}
	dst, err := lookup(reg, c.To)
	if err != nil {
		return err
	}
	src.AddListener(dst)
	return nil
}

func lookup(reg *registry.Registry, ep domain.Endpoint) (*port.Port, error) {
	g, ok := reg.Get(ep.Generator)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGenerator, ep.Generator)
	}
	p, ok := g.Port(ep.Port)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no port %q", domain.ErrUnknownPort, ep.Generator, ep.Port)
	}
	return p, nil
}
