package schema

import (
	"math"
	"testing"
)

func TestNumberType(t *testing.T) {
	typ := Number()

	if typ.Name() != "number" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "number")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int64(42), false},
		{uint8(7), false},
		{3.14, false},
		{float32(1.5), false},
		{"0.3", false},
		{" -2 ", false},
		{"3px", false},
		{"fast", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{true, false},
		{false, false},
		{1, false},
		{0.0, false},
		{"true", false},
		{"yes", true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestSliceAndOneOf(t *testing.T) {
	pattern := OneOf(String(), Slice(String()))

	if pattern.Name() != "string|[string]" {
		t.Errorf("Name() = %q", pattern.Name())
	}
	if err := pattern.Validate("x--"); err != nil {
		t.Errorf("string rejected: %v", err)
	}
	if err := pattern.Validate([]any{"x", "-"}); err != nil {
		t.Errorf("slice rejected: %v", err)
	}
	if err := pattern.Validate([]any{"x", 1}); err == nil {
		t.Error("expected mixed slice to be rejected")
	}
	if err := pattern.Validate(nil); err == nil {
		t.Error("expected nil to be rejected")
	}
}

func TestAny(t *testing.T) {
	if err := Any().Validate(nil); err != nil {
		t.Errorf("Any rejected nil: %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3px", 3, true},
		{" -2.5e1x", -25, true},
		{".5", 0.5, true},
		{"-Infinity", math.Inf(-1), true},
		{"px3", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
