package codec

import (
	"fmt"
	"strings"

	"github.com/primait/avrogen/internal/schema"
)

// FromJSON converts a JSON-decoded value into the intermediate form of s.
// Bytes are strings of codepoints 0-255, as in Avro defaults. A union value
// belongs to the first member it converts under.
func (g *Generator) FromJSON(s schema.Schema, v any) (any, error) {
	return g.fromJSON(s, v, false)
}

// defaultIntermediate converts a field default. A union default belongs to
// the union's first member.
func (g *Generator) defaultIntermediate(s schema.Schema, v any) (any, error) {
	return g.fromJSON(s, v, true)
}

func (g *Generator) fromJSON(s schema.Schema, v any, firstMember bool) (any, error) {
	switch t := s.(type) {
	case schema.Primitive:
		return primitiveFromJSON(t.Type, v)

	case schema.Logical:
		return primitiveFromJSON(t.Underlying, v)

	case schema.Reference:
		def, ok := g.table.Lookup(t.Name)
		if !ok {
			return nil, fmt.Errorf("unresolved reference %q", t.Name)
		}
		return g.fromJSON(def, v, firstMember)

	case *schema.Enum:
		sym, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("enum %s expects a string, got %T", t.FQN(), v)
		}
		return sym, nil

	case *schema.Record:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %s expects an object, got %T", t.FQN(), v)
		}
		out := make(map[string]any, len(obj))
		for _, f := range t.Fields {
			x, ok := obj[f.Name]
			if !ok {
				continue
			}
			conv, err := g.fromJSON(f.Type, x, firstMember)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name, err)
			}
			out[f.Name] = conv
		}
		return out, nil

	case schema.Array:
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("array expects a list, got %T", v)
		}
		out := make([]any, len(list))
		for i, x := range list {
			conv, err := g.fromJSON(t.Items, x, firstMember)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil

	case schema.Map:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("map expects an object, got %T", v)
		}
		out := make(map[string]any, len(obj))
		for k, x := range obj {
			conv, err := g.fromJSON(t.Values, x, firstMember)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = conv
		}
		return out, nil

	case schema.Union:
		if len(t.Members) == 0 {
			return nil, fmt.Errorf("empty union has no values")
		}
		if firstMember {
			return g.fromJSON(t.Members[0], v, firstMember)
		}
		var errs []string
		for _, m := range t.Members {
			conv, err := g.fromJSON(m, v, firstMember)
			if err == nil {
				return conv, nil
			}
			errs = append(errs, err.Error())
		}
		return nil, fmt.Errorf("no union member accepts the value: %s", strings.Join(errs, "; "))

	default:
		return nil, fmt.Errorf("no JSON conversion for %T", s)
	}
}

func primitiveFromJSON(t schema.PrimitiveType, v any) (any, error) {
	switch t {
	case schema.Null:
		if v == nil {
			return nil, nil
		}
	case schema.Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case schema.Int:
		if i, ok := schema.AsInt(v); ok {
			return int(i), nil
		}
	case schema.Long:
		if i, ok := schema.AsInt(v); ok {
			return i, nil
		}
	case schema.Float:
		if f, ok := schema.AsFloat(v); ok {
			return float32(f), nil
		}
	case schema.Double:
		if f, ok := schema.AsFloat(v); ok {
			return f, nil
		}
	case schema.Bytes:
		if s, ok := v.(string); ok {
			out := make([]byte, 0, len(s))
			for _, r := range s {
				if r > 0xFF {
					return nil, fmt.Errorf("bytes value has codepoint %U", r)
				}
				out = append(out, byte(r))
			}
			return out, nil
		}
	case schema.String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%s expects a different JSON value, got %T", t, v)
}

// ToJSON converts an intermediate value into the shape FromJSON reads:
// bytes become codepoint strings and float32 widens to float64. Map keys
// are left for the JSON encoder to sort.
func ToJSON(v any) any {
	switch x := v.(type) {
	case []byte:
		var b strings.Builder
		for _, c := range x {
			b.WriteRune(rune(c))
		}
		return b.String()
	case float32:
		return float64(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = ToJSON(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = ToJSON(item)
		}
		return out
	default:
		return v
	}
}
