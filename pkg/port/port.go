package port

import (
	"math"

	"github.com/aretw0/tendril/pkg/schema"
)

// DefaultMaxDepth bounds how many times one update may lap a wiring cycle
// when no explicit limit is set. Acyclic chains are never cut.
const DefaultMaxDepth = 64

// Sanitizer maps a raw value to the stored value.
// It must be pure. A non-nil error marks a runtime anomaly; the returned value is
// committed regardless.
type Sanitizer func(raw any) (any, error)

// Observer receives runtime anomalies raised while sanitizing.
type Observer func(p *Port, err error)

// Port is a named reactive cell.
// Ports are not safe for concurrent use; the engine drives them from a single goroutine.
type Port struct {
	name     string
	owner    string
	value    any
	sanitize Sanitizer
	typ      schema.Type
	callback func()
	observer Observer

	subscribers []*Port
	wired       bool
	maxDepth    int
	inflight    int // updates of this port currently fanning out
}

// Option configures a Port at construction.
type Option func(*Port)

// WithSanitizer sets the sanitizer. Nil stores values verbatim.
func WithSanitizer(s Sanitizer) Option {
	return func(p *Port) {
		p.sanitize = s
	}
}

// WithType sets the schema type used to validate declared values.
func WithType(t schema.Type) Option {
	return func(p *Port) {
		p.typ = t
	}
}

// WithCallback sets a side effect run after every update, once fan-out completed.
func WithCallback(fn func()) Option {
	return func(p *Port) {
		p.callback = fn
	}
}

// New creates a port holding the sanitized default.
// The default is sanitized silently: no observer exists yet.
func New(name string, def any, opts ...Option) *Port {
	p := &Port{name: name, typ: schema.Any()}
	for _, opt := range opts {
		opt(p)
	}
	p.value = def
	if p.sanitize != nil {
		p.value, _ = p.sanitize(def)
	}
	return p
}

// NewFloat creates a numeric port.
func NewFloat(name string, def float64, opts ...Option) *Port {
	return New(name, def, append([]Option{WithSanitizer(Float), WithType(schema.Number())}, opts...)...)
}

// NewBool creates a boolean port.
func NewBool(name string, def bool, opts ...Option) *Port {
	return New(name, def, append([]Option{WithSanitizer(Bool), WithType(schema.Bool())}, opts...)...)
}

// NewKey creates a port holding a key code; it accepts key names or codes.
func NewKey(name string, def string, opts ...Option) *Port {
	typ := schema.OneOf(schema.String(), schema.Number())
	return New(name, def, append([]Option{WithSanitizer(Key), WithType(typ)}, opts...)...)
}

// NewAny creates a port storing values verbatim.
func NewAny(name string, def any, opts ...Option) *Port {
	return New(name, def, opts...)
}

// Name returns the port name within its generator.
func (p *Port) Name() string { return p.name }

// ID returns "owner.name", or just the name for unowned ports.
func (p *Port) ID() string {
	if p.owner == "" {
		return p.name
	}
	return p.owner + "." + p.name
}

// Owner returns the generator instance name this port was bound to.
func (p *Port) Owner() string { return p.owner }

// Bind records the owning generator instance name.
func (p *Port) Bind(owner string) { p.owner = owner }

// Observe installs the anomaly observer.
func (p *Port) Observe(o Observer) { p.observer = o }

// SetMaxDepth sets the cycle lap limit for updates originating at this port.
func (p *Port) SetMaxDepth(n int) { p.maxDepth = n }

// Type returns the schema type of the port.
func (p *Port) Type() schema.Type { return p.typ }

// Value returns the stored value.
func (p *Port) Value() any { return p.value }

// Wired reports whether the port ever took part in a wiring edge.
func (p *Port) Wired() bool { return p.wired }

// Subscribers returns a copy of the subscriber list, in propagation order.
func (p *Port) Subscribers() []*Port {
	out := make([]*Port, len(p.subscribers))
	copy(out, p.subscribers)
	return out
}

// Set replaces the stored value without sanitizing or propagating.
// Generators use it for private bookkeeping kept in a port (e.g. a consumed pattern).
func (p *Port) Set(v any) { p.value = v }

// Update sanitizes v, commits it, propagates it to every subscriber and then
// runs the callback. It fails only when the update re-enters a port that is
// still fanning out more often than the lap limit allows.
func (p *Port) Update(v any) error {
	limit := p.maxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return p.update(v, limit, p)
}

func (p *Port) update(v any, limit int, origin *Port) error {
	if p.inflight > limit {
		return &PropagationError{Origin: origin.ID(), At: p.ID(), Laps: p.inflight}
	}
	p.inflight++
	defer func() { p.inflight-- }()

	val := v
	if p.sanitize != nil {
		var err error
		val, err = p.sanitize(v)
		if err != nil && p.observer != nil {
			p.observer(p, err)
		}
	}
	p.value = val

	for _, sub := range p.subscribers {
		if err := sub.update(val, limit, origin); err != nil {
			return err
		}
	}

	if p.callback != nil {
		p.callback()
	}
	return nil
}

// AddListener subscribes dst to p and marks both ports as wired.
// Wiring the same pair twice yields two propagations per update.
func (p *Port) AddListener(dst *Port) {
	p.subscribers = append(p.subscribers, dst)
	p.wired = true
	dst.wired = true
}

// Wire connects src to dst.
func Wire(src, dst *Port) {
	src.AddListener(dst)
}

// Float returns the stored value as float64, or NaN when it is not one.
func (p *Port) Float() float64 {
	if f, ok := p.value.(float64); ok {
		return f
	}
	return math.NaN()
}

// Bool returns the stored value as bool; non-bool values are false.
func (p *Port) Bool() bool {
	b, _ := p.value.(bool)
	return b
}

// Int returns the stored value as int, or -1 when it is not one.
func (p *Port) Int() int {
	if i, ok := p.value.(int); ok {
		return i
	}
	return -1
}
