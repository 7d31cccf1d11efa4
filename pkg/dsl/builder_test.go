package dsl

import (
	"testing"

	"github.com/aretw0/tendril/internal/compiler"
	"github.com/aretw0/tendril/pkg/domain"
)

func TestBuilder_Statements(t *testing.T) {
	stmts, err := New().
		Declare("Trig", "lfo", Set("frequency", 0.5)).
		Declare("Pixel", "dot").
		Connect("lfo.sin", "dot.x").
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}

	d, ok := stmts[0].(domain.Declaration)
	if !ok {
		t.Fatalf("expected a declaration, got %T", stmts[0])
	}
	if d.Kind != "Trig" || d.Name != "lfo" || d.Ports["frequency"] != 0.5 {
		t.Errorf("unexpected declaration: %+v", d)
	}

	if stmts[1].(domain.Declaration).Ports != nil {
		t.Errorf("declaration without values should have nil ports")
	}

	c, ok := stmts[2].(domain.Connection)
	if !ok {
		t.Fatalf("expected a connection, got %T", stmts[2])
	}
	if c.From.String() != "lfo.sin" || c.To.String() != "dot.x" {
		t.Errorf("unexpected connection: %s", c)
	}
}

func TestBuilder_BadEndpoint(t *testing.T) {
	_, err := New().Declare("Tick", "t").Connect("t", "x.y").Build()
	if err == nil {
		t.Fatal("expected an error for a malformed endpoint")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustBuild should panic on error")
		}
	}()
	New().Connect("a.b", "nodot").MustBuild()
}

func TestBuilder_ScriptRoundTrip(t *testing.T) {
	b := New().
		Declare("Beats", "drum", Set("pattern", "x--x")).
		Declare("Log", "log").
		Connect("drum.out", "log.value0")

	data, err := b.Script()
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}

	parsed, err := compiler.NewParser().Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v\n%s", err, data)
	}
	want := b.MustBuild()
	if len(parsed) != len(want) {
		t.Fatalf("round trip changed statement count: %d != %d", len(parsed), len(want))
	}
	for i := range want {
		if parsed[i].String() != want[i].String() {
			t.Errorf("statement %d: got %s, want %s", i, parsed[i], want[i])
		}
	}
}
