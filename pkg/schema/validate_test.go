package schema

import (
	"errors"
	"testing"
)

func TestValidate_Success(t *testing.T) {
	s := Schema{
		"incr":    Number(),
		"latches": Bool(),
		"pattern": String(),
	}

	data := map[string]any{
		"incr":    0.3,
		"latches": true,
	}

	if err := Validate(s, data); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	s := Schema{
		"incr": Number(),
	}

	data := map[string]any{
		"incr":  "fast",
		"bogus": 1,
	}

	err := Validate(s, data)
	if err == nil {
		t.Fatal("Validate() expected error")
	}

	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), err)
	}

	// sorted by key: bogus, incr
	var ve *ValidationError
	if !errors.As(errs[0], &ve) || ve.Key != "bogus" {
		t.Errorf("first error = %v, want bogus", errs[0])
	}
	if !errors.Is(errs[0], ErrUnknownField) {
		t.Errorf("bogus should be an unknown field: %v", errs[0])
	}
	if !errors.Is(errs[1], ErrTypeMismatch) {
		t.Errorf("incr should be a type mismatch: %v", errs[1])
	}
	want := `"bogus": no such port; "incr": expected number, got string "fast"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.As(err, &ve) {
		t.Error("errors.As should see through AggregateError")
	}
}

func TestValidate_Empty(t *testing.T) {
	if err := Validate(Schema{}, nil); err != nil {
		t.Errorf("Validate(nil) error = %v", err)
	}
}
