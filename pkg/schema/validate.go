package schema

import "sort"

// Schema maps port names to the type each accepts.
type Schema map[string]Type

// Validate checks every entry of data against the schema.
// Entries the schema lacks fail with ErrUnknownField; absent entries are fine.
// All failures are returned together as an *AggregateError in key order.
func Validate(schema Schema, data map[string]any) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		value := data[key]
		typ, ok := schema[key]
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: ErrUnknownField.Error(), Err: ErrUnknownField})
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value, Err: ErrTypeMismatch})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
