package codec

import (
	"fmt"

	"github.com/primait/avrogen/internal/random"
	"github.com/primait/avrogen/internal/schema"
)

func arrayNode(items *node) *node {
	mapItems := func(v any, f func(any) (any, error), at func(string, error) error, kind func(string, ...any) error) (any, error) {
		list, ok := v.([]any)
		if !ok {
			return nil, kind("expected []any, got %T", v)
		}
		out := make([]any, len(list))
		for i, item := range list {
			x, err := f(item)
			if err != nil {
				return nil, at(fmt.Sprintf("[%d]", i), err)
			}
			out[i] = x
		}
		return out, nil
	}

	return &node{
		encode: func(v any) (any, error) {
			return mapItems(v, items.encode, atEncode, encodeKind)
		},
		decode: func(v any) (any, error) {
			return mapItems(v, items.decode, atDecode, decodeKind)
		},
		dropPII: func(v any) (any, error) {
			return mapItems(v, items.dropPII, atEncode, encodeKind)
		},
		random: func(hint *schema.RangeHint, depth int) random.Generator[any] {
			r := lengthRange(hint, func(h *schema.RangeHint) *schema.LengthRange { return h.Array })
			if items.record {
				r = shrink(r, depth)
			}
			return random.Map(random.List(r.MinLength, r.MaxLength, items.random(hint, depth)), func(vs []any) any {
				return vs
			})
		},
		record: items.record,
	}
}

func mapNode(values *node) *node {
	mapValues := func(v any, f func(any) (any, error), at func(string, error) error, kind func(string, ...any) error) (any, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, kind("expected map[string]any, got %T", v)
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			x, err := f(item)
			if err != nil {
				return nil, at(k, err)
			}
			out[k] = x
		}
		return out, nil
	}

	return &node{
		encode: func(v any) (any, error) {
			return mapValues(v, values.encode, atEncode, encodeKind)
		},
		decode: func(v any) (any, error) {
			return mapValues(v, values.decode, atDecode, decodeKind)
		},
		dropPII: func(v any) (any, error) {
			return mapValues(v, values.dropPII, atEncode, encodeKind)
		},
		random: func(hint *schema.RangeHint, depth int) random.Generator[any] {
			r := lengthRange(hint, func(h *schema.RangeHint) *schema.LengthRange { return h.Map })
			if values.record {
				r = shrink(r, depth)
			}
			keys := random.String(1, 8, 'a', 'z')
			return random.Map(random.MapOf(r.MinLength, r.MaxLength, keys, values.random(hint, depth)), func(m map[string]any) any {
				return m
			})
		},
		record: values.record,
	}
}

// unionNode tries members in declaration order. When none accepts a value,
// both directions hand it back unchanged and report success.
func unionNode(members []*node) *node {
	record := false
	for _, m := range members {
		record = record || m.record
	}
	return &node{
		record: record,
		encode: func(v any) (any, error) {
			for _, m := range members {
				if out, err := m.encode(v); err == nil {
					return out, nil
				}
			}
			return v, nil
		},
		decode: func(v any) (any, error) {
			for _, m := range members {
				if out, err := m.decode(v); err == nil {
					return out, nil
				}
			}
			return v, nil
		},
		dropPII: func(v any) (any, error) {
			for _, m := range members {
				if _, err := m.encode(v); err == nil {
					return m.dropPII(v)
				}
			}
			return v, nil
		},
		random: func(hint *schema.RangeHint, depth int) random.Generator[any] {
			pool := members
			if depth >= maxRandomDepth {
				pool = withoutRecords(members)
			}
			if len(pool) == 0 {
				return random.Constant[any](nil)
			}
			gens := make([]random.Generator[any], len(pool))
			for i, m := range pool {
				gens[i] = m.random(hint, depth)
			}
			return random.OneOf(gens...)
		},
	}
}

// maxRandomDepth is the record depth past which random values stop
// growing: unions avoid members that hold records and collections of
// records come out at their minimum length.
const maxRandomDepth = 4

// withoutRecords returns the members that cannot hold a record, or all of
// them when every member can.
func withoutRecords(members []*node) []*node {
	var out []*node
	for _, m := range members {
		if !m.record {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return members
	}
	return out
}

// shrink narrows the length range of a collection of records as depth
// grows, halving the default-capped maximum at each level.
func shrink(r schema.LengthRange, depth int) schema.LengthRange {
	switch {
	case depth == 0:
		return r
	case depth >= maxRandomDepth:
		r.MaxLength = r.MinLength
	default:
		r.MaxLength = max(r.MinLength, min(r.MaxLength, schema.DefaultCollectionMaxLength)>>depth)
	}
	return r
}

func encodeKind(format string, args ...any) error { return encodeErrorf(format, args...) }
func decodeKind(format string, args ...any) error { return decodeErrorf(format, args...) }

// lengthRange picks a collection size range from hint, defaulting to
// [0, DefaultCollectionMaxLength].
func lengthRange(hint *schema.RangeHint, pick func(*schema.RangeHint) *schema.LengthRange) schema.LengthRange {
	if hint != nil {
		if r := pick(hint); r != nil {
			return *r
		}
	}
	return schema.LengthRange{MinLength: 0, MaxLength: schema.DefaultCollectionMaxLength}
}
