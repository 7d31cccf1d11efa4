package port

import (
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/tendril/pkg/schema"
	"github.com/spf13/cast"
)

// Float converts raw into a float64 the way live-coding scripts expect:
// numbers pass through, strings parse their leading numeric prefix ("3px" is 3),
// everything else becomes NaN with ErrNonNumeric. Infinite or NaN results are
// kept but flagged with ErrNonFinite.
func Float(raw any) (any, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		parsed, ok := schema.ParseNumber(v)
		if !ok {
			return math.NaN(), &ValueError{Value: raw, Err: ErrNonNumeric}
		}
		f = parsed
	case bool, nil:
		return math.NaN(), &ValueError{Value: raw, Err: ErrNonNumeric}
	default:
		converted, err := cast.ToFloat64E(v)
		if err != nil {
			return math.NaN(), &ValueError{Value: raw, Err: ErrNonNumeric}
		}
		f = converted
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f, &ValueError{Value: raw, Err: ErrNonFinite}
	}
	return f, nil
}

// Bool converts raw into a bool. Numbers are true when non-zero and not NaN;
// strings use strconv.ParseBool. Anything else is false with ErrNonBoolean.
func Bool(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, &ValueError{Value: raw, Err: ErrNonBoolean}
		}
		return b, nil
	case nil:
		return false, &ValueError{Value: raw, Err: ErrNonBoolean}
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return false, &ValueError{Value: raw, Err: ErrNonBoolean}
	}
	return f != 0 && !math.IsNaN(f), nil
}

// Key converts a key name ("q", "space", "left") or a key code into a key code.
// Unknown names become -1 with ErrUnknownKey.
func Key(raw any) (any, error) {
	if s, ok := raw.(string); ok {
		if code, found := KeyCode(s); found {
			return code, nil
		}
		return -1, &ValueError{Value: raw, Err: ErrUnknownKey}
	}
	if raw == nil {
		return -1, &ValueError{Value: raw, Err: ErrUnknownKey}
	}

	code, err := cast.ToIntE(raw)
	if err != nil {
		return -1, &ValueError{Value: raw, Err: ErrUnknownKey}
	}
	return code, nil
}
