package codec

import (
	"fmt"

	"github.com/primait/avrogen/internal/logical"
	"github.com/primait/avrogen/internal/schema"
)

// zeroFor returns a constructor for the redaction value of s. Each call
// yields a fresh value, so callers may mutate what they get back. visiting
// holds the records on the current path.
func (g *Generator) zeroFor(s schema.Schema, visiting map[string]bool) (func() any, error) {
	switch t := s.(type) {
	case schema.Primitive:
		switch t.Type {
		case schema.Boolean:
			return func() any { return false }, nil
		case schema.Int, schema.Long:
			return func() any { return int64(0) }, nil
		case schema.Float, schema.Double:
			return func() any { return float64(0) }, nil
		case schema.Bytes:
			return func() any { return []byte{} }, nil
		case schema.String:
			return func() any { return "" }, nil
		default:
			return func() any { return nil }, nil
		}

	case schema.Logical:
		c, err := logical.For(t)
		if err != nil {
			return nil, err
		}
		zero := c.Zero()
		return func() any { return zero }, nil

	case schema.Reference:
		def, ok := g.table.Lookup(t.Name)
		if !ok {
			return nil, &GenerationError{Code: CodeUnresolved, Message: fmt.Sprintf("unresolved reference %q", t.Name)}
		}
		return g.zeroFor(def, visiting)

	case *schema.Enum:
		if t.Default == "" {
			return nil, &GenerationError{
				Code:    CodePIIEnumNoDefault,
				Message: fmt.Sprintf("PII enum %s declares no default symbol to redact to", t.FQN()),
			}
		}
		sym := Symbol(t.Default)
		return func() any { return sym }, nil

	case *schema.Record:
		fqn := t.FQN()
		if visiting[fqn] {
			return nil, &GenerationError{
				Code:    CodeUnredactable,
				Message: fmt.Sprintf("record %s contains itself without a nullable break", fqn),
			}
		}
		visiting[fqn] = true
		defer delete(visiting, fqn)

		zeros := make([]func() any, len(t.Fields))
		for i, f := range t.Fields {
			z, err := g.zeroFor(f.Type, visiting)
			if err != nil {
				return nil, err
			}
			zeros[i] = z
		}
		return func() any {
			rec := &Record{Name: fqn, Fields: make(map[string]any, len(zeros))}
			for i, f := range t.Fields {
				rec.Fields[f.Name] = zeros[i]()
			}
			return rec
		}, nil

	case schema.Array:
		return func() any { return []any{} }, nil

	case schema.Map:
		return func() any { return map[string]any{} }, nil

	case schema.Union:
		for _, m := range t.Members {
			if p, ok := m.(schema.Primitive); ok && p.Type == schema.Null {
				return func() any { return nil }, nil
			}
		}
		if len(t.Members) == 0 {
			return func() any { return nil }, nil
		}
		return g.zeroFor(t.Members[0], visiting)

	default:
		return nil, &GenerationError{Code: CodeInlineDefinition, Message: fmt.Sprintf("cannot redact %T", s)}
	}
}
