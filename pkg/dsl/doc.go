/*
Package dsl provides a fluent Go builder for Tendril scripts.

It produces the same statements a YAML or JSON script would, which is handy for
tests, generated patches and embedding Tendril without script files.

Example usage:

	stmts, err := dsl.New().
		Declare("Trig", "lfo", dsl.Set("frequency", 0.5)).
		Declare("Pixel", "dot").
		Connect("lfo.sin", "dot.x").
		Connect("lfo.cos", "dot.y").
		Build()
	if err != nil {
		return err
	}
	err = eng.Rebuild(ctx, stmts)
*/
package dsl
