package generator

import (
	"strconv"

	"github.com/aretw0/tendril/pkg/host"
	"github.com/aretw0/tendril/pkg/port"
)

// LogPorts is the size of the Log port bank.
const LogPorts = 10

// Log reports the values of its wired ports to the diagnostics sink.
type Log struct {
	base
	env  Env
	bank [LogPorts]*port.Port
}

func newLog(env Env) *Log {
	g := &Log{env: env}
	ports := make([]*port.Port, LogPorts)
	for i := range g.bank {
		g.bank[i] = port.NewAny("value"+strconv.Itoa(i), nil)
		ports[i] = g.bank[i]
	}
	g.base = newBase(KindLog, ports...)
	return g
}

// Slot returns the i-th port of the bank, or nil when out of range.
func (g *Log) Slot(i int) *port.Port {
	if i < 0 || i >= LogPorts {
		return nil
	}
	return g.bank[i]
}

func (g *Log) Step() error {
	for _, p := range g.bank {
		if !p.Wired() {
			continue
		}
		g.env.Diagnostics.Emit(host.Record{
			Frame:     g.env.Frame(),
			Generator: p.Owner(),
			Port:      p.Name(),
			Value:     p.Value(),
		})
	}
	return nil
}
