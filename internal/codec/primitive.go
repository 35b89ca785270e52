package codec

import (
	"math"

	"github.com/primait/avrogen/internal/random"
	"github.com/primait/avrogen/internal/schema"
)

func identity(v any) (any, error) { return v, nil }

func primitiveNode(t schema.PrimitiveType) *node {
	n := &node{dropPII: identity}
	switch t {
	case schema.Null:
		n.encode = func(v any) (any, error) {
			if v != nil {
				return nil, encodeErrorf("expected nil, got %T", v)
			}
			return nil, nil
		}
		n.decode = func(v any) (any, error) {
			if v != nil {
				return nil, decodeErrorf("expected null, got %T", v)
			}
			return nil, nil
		}
		n.random = func(*schema.RangeHint, int) random.Generator[any] {
			return random.Constant[any](nil)
		}

	case schema.Boolean:
		n.encode = guard[bool]("bool", encodeErrorf)
		n.decode = guard[bool]("boolean", decodeErrorf)
		n.random = func(*schema.RangeHint, int) random.Generator[any] {
			return random.Any(random.Bool())
		}

	case schema.Int:
		n.encode = func(v any) (any, error) {
			i, ok := integer(v)
			if !ok {
				return nil, encodeErrorf("expected int64, got %T", v)
			}
			if i < math.MinInt32 || i > math.MaxInt32 {
				return nil, encodeErrorf("%d overflows int", i)
			}
			return int(i), nil
		}
		n.decode = func(v any) (any, error) {
			i, ok := integer(v)
			if !ok {
				return nil, decodeErrorf("expected int, got %T", v)
			}
			if i < math.MinInt32 || i > math.MaxInt32 {
				return nil, decodeErrorf("%d overflows int", i)
			}
			return i, nil
		}
		n.random = func(hint *schema.RangeHint, _ int) random.Generator[any] {
			r := schema.IntRange{Min: math.MinInt32, Max: math.MaxInt32}
			if hint != nil && hint.Int != nil {
				r.Min = max(hint.Int.Min, math.MinInt32)
				r.Max = min(hint.Int.Max, math.MaxInt32)
			}
			return random.Any(random.Int(r.Min, r.Max))
		}

	case schema.Long:
		n.encode = func(v any) (any, error) {
			i, ok := integer(v)
			if !ok {
				return nil, encodeErrorf("expected int64, got %T", v)
			}
			return i, nil
		}
		n.decode = func(v any) (any, error) {
			i, ok := integer(v)
			if !ok {
				return nil, decodeErrorf("expected long, got %T", v)
			}
			return i, nil
		}
		n.random = func(hint *schema.RangeHint, _ int) random.Generator[any] {
			if hint != nil && hint.Long != nil {
				return random.Any(random.Int(hint.Long.Min, hint.Long.Max))
			}
			return random.Any(random.Int(math.MinInt64, math.MaxInt64))
		}

	case schema.Float:
		n.encode = func(v any) (any, error) {
			f, ok := float(v)
			if !ok {
				return nil, encodeErrorf("expected float64, got %T", v)
			}
			return float32(f), nil
		}
		n.decode = func(v any) (any, error) {
			f, ok := float(v)
			if !ok {
				return nil, decodeErrorf("expected float, got %T", v)
			}
			return f, nil
		}
		n.random = func(hint *schema.RangeHint, _ int) random.Generator[any] {
			// values survive the float32 round trip
			return random.Map(floatGen(hint), func(f float64) any { return float64(float32(f)) })
		}

	case schema.Double:
		n.encode = func(v any) (any, error) {
			f, ok := float(v)
			if !ok {
				return nil, encodeErrorf("expected float64, got %T", v)
			}
			return f, nil
		}
		n.decode = func(v any) (any, error) {
			f, ok := float(v)
			if !ok {
				return nil, decodeErrorf("expected double, got %T", v)
			}
			return f, nil
		}
		n.random = func(hint *schema.RangeHint, _ int) random.Generator[any] {
			return random.Any(floatGen(hint))
		}

	case schema.Bytes:
		n.encode = guard[[]byte]("[]byte", encodeErrorf)
		n.decode = guard[[]byte]("bytes", decodeErrorf)
		n.random = func(hint *schema.RangeHint, _ int) random.Generator[any] {
			r := lengthRange(hint, func(h *schema.RangeHint) *schema.LengthRange { return h.Bytes })
			return random.Any(random.Bytes(r.MinLength, r.MaxLength))
		}

	default: // string
		n.encode = guard[string]("string", encodeErrorf)
		n.decode = guard[string]("string", decodeErrorf)
		n.random = func(hint *schema.RangeHint, _ int) random.Generator[any] {
			return random.Any(stringGen(hint))
		}
	}
	return n
}

// guard passes values of type T through and rejects anything else.
func guard[T any, E error](want string, fail func(string, ...any) E) func(any) (any, error) {
	return func(v any) (any, error) {
		if _, ok := v.(T); !ok {
			return nil, fail("expected %s, got %T", want, v)
		}
		return v, nil
	}
}

func floatGen(hint *schema.RangeHint) random.Generator[float64] {
	if hint != nil && hint.Double != nil {
		return random.Float(hint.Double.Min, hint.Double.Max)
	}
	return random.Float(-1e6, 1e6)
}

func stringGen(hint *schema.RangeHint) random.Generator[string] {
	if hint == nil || hint.String == nil {
		return random.String(0, schema.DefaultStringMaxLength, 'a', 'z')
	}
	r := hint.String
	switch r.Format {
	case schema.FormatPostalCode:
		return random.PostalCode()
	case schema.FormatUUID:
		return random.UUID()
	case schema.FormatEmail:
		return random.Email()
	default:
		return random.String(r.MinLength, r.MaxLength, r.MinCodepoint, r.MaxCodepoint)
	}
}

// integer accepts the Go integer kinds. Floats are rejected.
func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	default:
		return 0, false
	}
}

// float accepts float32 and float64.
func float(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	default:
		return 0, false
	}
}
