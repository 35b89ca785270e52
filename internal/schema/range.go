package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// RangeHint constrains random generation for one field. It is decoded from
// the non-standard "range" field attribute; every section is optional.
//
// Example:
//
//	"range": {"int": {"min": 0, "max": 10}, "string": {"max_length": 5, "format": "postal_code"}}
type RangeHint struct {
	Int       *IntRange
	Long      *IntRange
	Double    *FloatRange // also applies to float
	Decimal   *DecimalRange
	String    *StringRange
	Bytes     *LengthRange
	Array     *LengthRange
	Map       *LengthRange
	Date      *TimeRange
	Timestamp *TimeRange // also applies to datetime-string and local timestamps
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int64
	Max int64
}

// FloatRange is a half-open float interval [Min, Max).
type FloatRange struct {
	Min float64
	Max float64
}

// DecimalRange bounds decimals; values are decimal strings.
type DecimalRange struct {
	Min string
	Max string
}

// StringRange bounds string length and codepoints. Format selects a
// semantic override ("postal_code", "uuid", "email").
type StringRange struct {
	MinLength    int
	MaxLength    int
	MinCodepoint rune
	MaxCodepoint rune
	Format       string
}

// LengthRange bounds collection sizes.
type LengthRange struct {
	MinLength int
	MaxLength int
}

// TimeRange bounds dates and instants; values are ISO-8601 strings.
type TimeRange struct {
	Min string
	Max string
}

// Defaults applied when a range section omits a bound.
const (
	DefaultStringMaxLength     = 16
	DefaultCollectionMaxLength = 5
)

// Known string formats.
const (
	FormatPostalCode = "postal_code"
	FormatUUID       = "uuid"
	FormatEmail      = "email"
)

// ParseRangeHint decodes a "range" attribute.
func ParseRangeHint(v any) (*RangeHint, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ShapeError{Message: fmt.Sprintf("range must be an object, got %T", v)}
	}

	hint := &RangeHint{}
	for key, raw := range obj {
		section, ok := raw.(map[string]any)
		if !ok {
			return nil, &ShapeError{Path: key, Message: "range section must be an object"}
		}
		var err error
		switch key {
		case "int":
			hint.Int, err = parseIntRange(section)
		case "long":
			hint.Long, err = parseIntRange(section)
		case "float", "double":
			hint.Double, err = parseFloatRange(section)
		case "decimal":
			hint.Decimal = &DecimalRange{}
			hint.Decimal.Min, err = optString(section, "min")
			if err == nil {
				hint.Decimal.Max, err = optString(section, "max")
			}
		case "string":
			hint.String, err = parseStringRange(section)
		case "bytes":
			hint.Bytes, err = parseLengthRange(section, DefaultCollectionMaxLength)
		case "array":
			hint.Array, err = parseLengthRange(section, DefaultCollectionMaxLength)
		case "map":
			hint.Map, err = parseLengthRange(section, DefaultCollectionMaxLength)
		case "date":
			hint.Date, err = parseTimeRange(section)
		case "timestamp", "datetime":
			hint.Timestamp, err = parseTimeRange(section)
		default:
			return nil, &ShapeError{Path: key, Message: "unknown range section"}
		}
		if err != nil {
			return nil, withPrefix(key, err)
		}
	}
	return hint, nil
}

func parseIntRange(m map[string]any) (*IntRange, error) {
	r := &IntRange{Min: math.MinInt32, Max: math.MaxInt32}
	if v, ok := m["min"]; ok {
		n, ok := AsInt(v)
		if !ok {
			return nil, &ShapeError{Path: "min", Message: "must be an integer"}
		}
		r.Min = n
	}
	if v, ok := m["max"]; ok {
		n, ok := AsInt(v)
		if !ok {
			return nil, &ShapeError{Path: "max", Message: "must be an integer"}
		}
		r.Max = n
	}
	if r.Min > r.Max {
		return nil, &ShapeError{Message: "min must not exceed max"}
	}
	return r, nil
}

func parseFloatRange(m map[string]any) (*FloatRange, error) {
	r := &FloatRange{Min: -1e6, Max: 1e6}
	if v, ok := m["min"]; ok {
		f, ok := AsFloat(v)
		if !ok {
			return nil, &ShapeError{Path: "min", Message: "must be a number"}
		}
		r.Min = f
	}
	if v, ok := m["max"]; ok {
		f, ok := AsFloat(v)
		if !ok {
			return nil, &ShapeError{Path: "max", Message: "must be a number"}
		}
		r.Max = f
	}
	if r.Min > r.Max {
		return nil, &ShapeError{Message: "min must not exceed max"}
	}
	return r, nil
}

func parseLengthRange(m map[string]any, defaultMax int) (*LengthRange, error) {
	r := &LengthRange{MinLength: 0, MaxLength: defaultMax}
	if v, ok := m["min_length"]; ok {
		n, ok := AsInt(v)
		if !ok || n < 0 {
			return nil, &ShapeError{Path: "min_length", Message: "must be a non-negative integer"}
		}
		r.MinLength = int(n)
	}
	if v, ok := m["max_length"]; ok {
		n, ok := AsInt(v)
		if !ok || n < 0 {
			return nil, &ShapeError{Path: "max_length", Message: "must be a non-negative integer"}
		}
		r.MaxLength = int(n)
	} else {
		r.MaxLength = max(r.MaxLength, r.MinLength)
	}
	if r.MinLength > r.MaxLength {
		return nil, &ShapeError{Message: "min_length must not exceed max_length"}
	}
	return r, nil
}

func parseStringRange(m map[string]any) (*StringRange, error) {
	lengths, err := parseLengthRange(m, DefaultStringMaxLength)
	if err != nil {
		return nil, err
	}
	r := &StringRange{
		MinLength:    lengths.MinLength,
		MaxLength:    lengths.MaxLength,
		MinCodepoint: 'a',
		MaxCodepoint: 'z',
	}
	if v, ok := m["min_codepoint"]; ok {
		n, ok := AsInt(v)
		if !ok || n < 0 || n > math.MaxInt32 {
			return nil, &ShapeError{Path: "min_codepoint", Message: "must be a codepoint"}
		}
		r.MinCodepoint = rune(n)
	}
	if v, ok := m["max_codepoint"]; ok {
		n, ok := AsInt(v)
		if !ok || n < 0 || n > math.MaxInt32 {
			return nil, &ShapeError{Path: "max_codepoint", Message: "must be a codepoint"}
		}
		r.MaxCodepoint = rune(n)
	}
	if r.MinCodepoint > r.MaxCodepoint {
		return nil, &ShapeError{Message: "min_codepoint must not exceed max_codepoint"}
	}
	r.Format, err = optString(m, "format")
	if err != nil {
		return nil, err
	}
	switch r.Format {
	case "", FormatPostalCode, FormatUUID, FormatEmail:
	default:
		return nil, &ShapeError{Path: "format", Message: fmt.Sprintf("unknown string format %q", r.Format)}
	}
	return r, nil
}

func parseTimeRange(m map[string]any) (*TimeRange, error) {
	r := &TimeRange{}
	var err error
	if r.Min, err = optString(m, "min"); err != nil {
		return nil, err
	}
	if r.Max, err = optString(m, "max"); err != nil {
		return nil, err
	}
	return r, nil
}

func optString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ShapeError{Path: key, Message: "must be a string"}
	}
	return s, nil
}

// AsInt converts a decoded JSON number to int64. Floats are accepted only
// when integral.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return AsInt(float64(n))
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

// AsFloat converts a decoded JSON number to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		i, ok := AsInt(v)
		return float64(i), ok
	}
}

// doc renders the hint back into its schema-document form.
func (h *RangeHint) doc() map[string]any {
	out := map[string]any{}
	if h.Int != nil {
		out["int"] = map[string]any{"min": h.Int.Min, "max": h.Int.Max}
	}
	if h.Long != nil {
		out["long"] = map[string]any{"min": h.Long.Min, "max": h.Long.Max}
	}
	if h.Double != nil {
		out["double"] = map[string]any{"min": h.Double.Min, "max": h.Double.Max}
	}
	if h.Decimal != nil {
		sec := map[string]any{}
		if h.Decimal.Min != "" {
			sec["min"] = h.Decimal.Min
		}
		if h.Decimal.Max != "" {
			sec["max"] = h.Decimal.Max
		}
		out["decimal"] = sec
	}
	if h.String != nil {
		sec := map[string]any{
			"min_length":    h.String.MinLength,
			"max_length":    h.String.MaxLength,
			"min_codepoint": int64(h.String.MinCodepoint),
			"max_codepoint": int64(h.String.MaxCodepoint),
		}
		if h.String.Format != "" {
			sec["format"] = h.String.Format
		}
		out["string"] = sec
	}
	for key, lr := range map[string]*LengthRange{"bytes": h.Bytes, "array": h.Array, "map": h.Map} {
		if lr != nil {
			out[key] = map[string]any{"min_length": lr.MinLength, "max_length": lr.MaxLength}
		}
	}
	for key, tr := range map[string]*TimeRange{"date": h.Date, "timestamp": h.Timestamp} {
		if tr == nil {
			continue
		}
		sec := map[string]any{}
		if tr.Min != "" {
			sec["min"] = tr.Min
		}
		if tr.Max != "" {
			sec["max"] = tr.Max
		}
		out[key] = sec
	}
	return out
}
