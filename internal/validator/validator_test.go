package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/tendril/pkg/domain"
)

func TestValidateScript(t *testing.T) {
	// Scenario A: a valid, fully wired script.
	report, err := ValidateScript([]byte(`
- {kind: Tick, name: t}
- {kind: Log, name: log}
- {from: t.tick, to: log.value0}
`), 64)
	if err != nil {
		t.Fatalf("Scenario A (Valid) failed: %v", err)
	}
	if report.Generators != 2 || report.Edges != 1 || report.Statements != 3 {
		t.Errorf("unexpected report: %+v", report)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", report.Warnings)
	}

	// Scenario B: a connection to an undeclared generator.
	_, err = ValidateScript([]byte(`
- {kind: Tick, name: t}
- {from: t.tick, to: ghost.x}
`), 64)
	if err == nil {
		t.Fatal("Scenario B (Broken) should have failed, but got nil")
	}
	if !domain.IsBuildError(err) {
		t.Errorf("expected a BuildError, got %T", err)
	}
	if !strings.Contains(err.Error(), "statement 2") {
		t.Errorf("expected the failing statement in %q", err)
	}
}

func TestValidateScript_Warnings(t *testing.T) {
	report, err := ValidateScript([]byte(`
- {kind: Value, name: a}
- {kind: Value, name: b}
- {kind: Log, name: quiet}
- {kind: Trig, name: lonely}
- {kind: Pixel, name: dot}
- {from: a.value, to: b.value}
- {from: b.value, to: a.value}
`), 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Loops) != 1 {
		t.Fatalf("expected one loop, got %v", report.Loops)
	}

	joined := strings.Join(report.Warnings, "\n")
	for _, want := range []string{
		"quiet: Log has no wired ports",
		"lonely: Trig is not connected",
		"feedback loop a.value -> b.value (propagation stops after 8 laps)",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing warning %q in:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "dot:") {
		t.Errorf("Pixel draws on its own and should not be flagged:\n%s", joined)
	}
}
