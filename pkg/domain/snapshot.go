package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// PortView is a read-only view of one port.
type PortView struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Wired bool   `json:"wired"`
}

// GeneratorView is a read-only view of one generator instance.
type GeneratorView struct {
	Name  string     `json:"name"`
	Kind  string     `json:"kind"`
	Ports []PortView `json:"ports"`
}

// Edge is one wiring edge recovered from a subscriber list.
type Edge struct {
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`
}

// Snapshot describes the running graph in registration order.
type Snapshot struct {
	BuildID    string          `json:"build_id,omitempty"`
	Frame      uint64          `json:"frame"`
	Generators []GeneratorView `json:"generators"`
	Edges      []Edge          `json:"edges"`
	LastError  string          `json:"last_error,omitempty"`
}

// JSONValue returns v in a form encoding/json accepts: non-finite floats
// become their string form ("NaN", "+Inf", "-Inf").
func JSONValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return v
}

func (p PortView) MarshalJSON() ([]byte, error) {
	type plain PortView
	v := plain(p)
	v.Value = JSONValue(p.Value)
	return json.Marshal(v)
}
