package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRebuild EventType = "rebuild"
	EventTick    EventType = "tick"
	EventAnomaly EventType = "anomaly"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RebuildEvent reports the outcome of one rebuild attempt.
type RebuildEvent struct {
	EventBase
	BuildID    string        `json:"build_id"`
	Statements int           `json:"statements"`
	Generators int           `json:"generators"`
	Edges      int           `json:"edges"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// TickEvent reports one completed (or aborted) frame tick.
type TickEvent struct {
	EventBase
	Frame      uint64        `json:"frame"`
	Generators int           `json:"generators"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// AnomalyKind classifies non-fatal runtime value problems.
type AnomalyKind string

const (
	AnomalyNonNumeric AnomalyKind = "non_numeric"
	AnomalyNonFinite  AnomalyKind = "non_finite"
	AnomalyNonBoolean AnomalyKind = "non_boolean"
	AnomalyUnknownKey AnomalyKind = "unknown_key"
	AnomalyOther      AnomalyKind = "other"
)

// Anomaly is a runtime value problem. It never stops stepping: the sanitized
// value still propagates through the graph.
type Anomaly struct {
	Generator string      `json:"generator"`
	Port      string      `json:"port"`
	Kind      AnomalyKind `json:"kind"`
	Value     any         `json:"value"`
	Err       error       `json:"-"`
}

func (a Anomaly) Error() string {
	return a.Generator + "." + a.Port + ": " + a.Err.Error()
}

func (a Anomaly) Unwrap() error {
	return a.Err
}

// AnomalyEvent carries an Anomaly to observers.
type AnomalyEvent struct {
	EventBase
	Anomaly
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRebuild func(context.Context, *RebuildEvent)
	OnTick    func(context.Context, *TickEvent)
	OnAnomaly func(context.Context, *AnomalyEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRebuild: chain(h.OnRebuild, other.OnRebuild),
		OnTick:    chain(h.OnTick, other.OnTick),
		OnAnomaly: chain(h.OnAnomaly, other.OnAnomaly),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
