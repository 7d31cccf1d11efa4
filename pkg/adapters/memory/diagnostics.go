package memory

import (
	"sync"

	"github.com/aretw0/tendril/pkg/host"
)

// Diagnostics buffers emitted records.
type Diagnostics struct {
	mu      sync.Mutex
	records []host.Record
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) Emit(r host.Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, r)
}

// Records returns a copy of the buffered records.
func (d *Diagnostics) Records() []host.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]host.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Lines renders the buffered records as "gen.port : value" lines.
func (d *Diagnostics) Lines() []string {
	recs := d.Records()
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = r.String()
	}
	return lines
}
