/*
Package generator defines the stepped units of a Tendril graph.

A Generator owns a fixed, ordered set of named ports and exposes a single Step
operation invoked once per frame. Inputs and outputs are a naming convention of
each kind; the type does not enforce direction.

The set of kinds is closed. Scripts name a kind by its code ("Tick", "Math",
"Beats", ...); ParseKind resolves the code and New builds the instance:

	kind, err := generator.ParseKind("Tick")
	if err != nil {
		return err
	}
	g, err := generator.New(kind, generator.Env{Clock: clock})

Adding a kind means adding a Kind constant, a codes entry and a case in New.
*/
package generator
