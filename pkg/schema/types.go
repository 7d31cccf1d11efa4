package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Type defines the contract for port value validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "number", "bool").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// NumberType accepts any numeric kind and strings with a numeric prefix.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error {
	switch v := value.(type) {
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case string:
		if _, ok := ParseNumber(v); ok {
			return nil
		}
		return fmt.Errorf("expected number, got string %q", v)
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// BoolType accepts booleans, numbers (non-zero is true) and "true"/"false" strings.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	switch v := value.(type) {
	case bool:
		return nil
	case string:
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("expected bool, got string %q", v)
		}
		return nil
	default:
		if (&NumberType{}).Validate(value) == nil {
			return nil
		}
		return fmt.Errorf("expected bool, got %T", value)
	}
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected slice, got %T", value)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// AnyType accepts every value, including nil.
type AnyType struct{}

func (t *AnyType) Name() string { return "any" }

func (t *AnyType) Validate(any) error { return nil }

// OneOfType accepts a value matching at least one of its alternatives.
type OneOfType struct {
	types []Type
}

func (t *OneOfType) Name() string {
	names := make([]string, len(t.types))
	for i, typ := range t.types {
		names[i] = typ.Name()
	}
	return strings.Join(names, "|")
}

func (t *OneOfType) Validate(value any) error {
	for _, typ := range t.types {
		if typ.Validate(value) == nil {
			return nil
		}
	}
	return fmt.Errorf("expected %s, got %T", t.Name(), value)
}

// --- Factory Functions ---

// Number creates a numeric type validator.
func Number() Type { return &NumberType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// String creates a string type validator.
func String() Type { return &StringType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Any creates a validator that accepts everything.
func Any() Type { return &AnyType{} }

// OneOf creates a validator accepting any of the given types.
func OneOf(types ...Type) Type {
	return &OneOfType{types: types}
}
