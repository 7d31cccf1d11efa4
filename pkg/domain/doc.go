/*
Package domain contains the core models shared by every layer of the Tendril engine.

It defines the statements a script compiles to, the error taxonomy of the engine,
the lifecycle events emitted while rebuilding and ticking, and the introspection
snapshot. This package is kept pure and free of external dependencies like I/O or
rendering, following Hexagonal Architecture principles.

# Key Entities

  - Statement: Declaration (instantiate a generator) or Connection (wire two ports).
  - BuildError: a rebuild failure tied to the statement that caused it.
  - TickError: a fatal failure inside one frame tick.
  - Anomaly: a non-fatal runtime value problem (NaN, Inf, wrong type).
  - Snapshot: a read-only view of the running graph.
*/
package domain
