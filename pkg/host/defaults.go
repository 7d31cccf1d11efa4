package host

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aretw0/tendril/pkg/domain"
)

// NopSurface discards every drawing call.
type NopSurface struct{}

func (NopSurface) Plot(float64, float64, domain.Color)                       {}
func (NopSurface) Line(float64, float64, float64, float64, domain.Color)     {}
func (NopSurface) FillRect(float64, float64, float64, float64, domain.Color) {}
func (NopSurface) Rotate(float64)                                            {}
func (NopSurface) Push()                                                     {}
func (NopSurface) Pop()                                                      {}
func (NopSurface) Clear(domain.Color)                                        {}

// NopKeyboard reports every key as released.
type NopKeyboard struct{}

func (NopKeyboard) IsKeyDown(int) bool { return false }

// NopDiagnostics drops every record.
type NopDiagnostics struct{}

func (NopDiagnostics) Emit(Record) {}

// SystemClock measures milliseconds since it was created, on the monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock starting at zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// WriterDiagnostics prints records, one per line.
type WriterDiagnostics struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterDiagnostics creates a sink writing to w.
func NewWriterDiagnostics(w io.Writer) *WriterDiagnostics {
	return &WriterDiagnostics{w: w}
}

func (d *WriterDiagnostics) Emit(r Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.w, r.String())
}

// MultiDiagnostics fans records out to several sinks.
type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) Emit(r Record) {
	for _, d := range m {
		d.Emit(r)
	}
}
