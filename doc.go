/*
Package tendril is a live-coding engine for reactive generator graphs.

A script declares generators (oscillators, arithmetic, drawing primitives,
rhythm sequencers) and wires their ports together. Every frame the engine
steps each generator once, in declaration order; a value written to a port is
pushed synchronously, depth first, to every port wired to it.

Scripts can be replaced at any time. A new script is built on the side and
swapped in only if every statement succeeds; otherwise the previous graph keeps
running and Err reports what went wrong. This makes it safe to edit a script
while it plays.

# Usage

	eng := tendril.New(
		tendril.WithSurface(surface),
		tendril.WithDiagnostics(host.NewWriterDiagnostics(os.Stdout)),
	)

	script := []byte(`
	- {action: declare, kind: Tick, name: t, ports: {incr: 0.02}}
	- {action: declare, kind: Pixel, name: p}
	- {action: connect, from: t.tick, to: p.x}
	`)
	if err := eng.RebuildScript(ctx, script); err != nil {
		log.Println(err) // the previous graph, if any, keeps running
	}

	for range time.Tick(time.Second / 60) {
		_ = eng.Tick(ctx)
	}

Hosts supply the collaborators in pkg/host: a Surface to draw on, a Clock,
a Keyboard and a Diagnostics sink. pkg/runner drives an Engine at a fixed frame
rate and serializes rebuild requests coming from other goroutines.

# Errors

Build failures are returned as *domain.BuildError and wrap one of the
sentinel errors in pkg/domain. Bad runtime values (text where a number is
expected, division by zero) never stop the graph; they are reported through
LifecycleHooks.OnAnomaly. A propagation loop that exceeds the depth limit
aborts the current frame with a *domain.TickError wrapping
port.ErrPropagationDepth.
*/
package tendril
