/*
Package port implements the reactive cell at the heart of the dataflow graph.

A Port holds a sanitized value and an ordered list of subscriber ports. Updating a
port sanitizes the raw value, commits it, pushes it synchronously into every
subscriber (depth-first, in subscriber order) and finally runs the optional
callback. Wiring is a reference between two ports, never an ownership transfer.

Propagation is bounded on cycles only. A port stays in flight while it fans out;
when an update re-enters an in-flight port more often than the configured lap
limit, it stops with ErrPropagationDepth instead of exhausting the stack. Acyclic
chains propagate to any length.

Sanitizers never fail an update. When a raw value cannot be represented (a
non-numeric string fed into a numeric port, a division by zero) the sanitized
fallback is committed and a *ValueError is handed to the port observer as a
runtime anomaly.
*/
package port
