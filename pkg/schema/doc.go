// Package schema describes the value types a port accepts.
//
// Every generator port carries a Type. The graph builder checks initial port
// values of a declaration against those types before applying them, turning
// what would otherwise be a silent runtime anomaly into a build error:
//
//	s := schema.Schema{
//	    "incr": schema.Number(),
//	    "latches": schema.Bool(),
//	}
//
//	if err := schema.Validate(s, map[string]any{"incr": "fast", "speed": 1}); err != nil {
//	    // "incr": expected number, got string "fast"; "speed": no such port
//	}
//
// Numbers follow the same leading-prefix rule as numeric port updates, so a
// declared "3px" is accepted and stored as 3.
//
// The package has no dependencies beyond the Go standard library.
package schema
