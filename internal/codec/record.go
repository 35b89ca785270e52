package codec

import (
	"errors"
	"fmt"

	"github.com/primait/avrogen/internal/random"
	"github.com/primait/avrogen/internal/schema"
)

// recordField is one compiled field of a record.
type recordField struct {
	name string
	node *node
	hint *schema.RangeHint

	// fallback is the default in intermediate form; hasDefault tells an
	// absent default from a null one.
	fallback   any
	hasDefault bool

	// zero is non-nil for PII fields.
	zero func() any
}

func (g *Generator) buildRecord(def *schema.Record) (*node, error) {
	fqn := def.FQN()
	fields := make([]recordField, len(def.Fields))
	for i, f := range def.Fields {
		n, err := g.compile(f.Type, fqn)
		if err != nil {
			return nil, err
		}
		rf := recordField{name: f.Name, node: n, hint: f.Range}
		if f.HasDefault {
			rf.fallback, err = g.defaultIntermediate(f.Type, f.Default)
			if err != nil {
				return nil, &GenerationError{Code: CodeInvalidDefault, Name: fqn, Field: f.Name, Message: err.Error()}
			}
			rf.hasDefault = true
		}
		if f.PII {
			rf.zero, err = g.zeroFor(f.Type, map[string]bool{fqn: true})
			if err != nil {
				var ge *GenerationError
				if errors.As(err, &ge) {
					ge.Name, ge.Field = fqn, f.Name
				}
				return nil, err
			}
		}
		fields[i] = rf
	}

	return &node{
		encode: func(v any) (any, error) {
			rec, err := asRecord(v, fqn)
			if err != nil {
				return nil, err
			}
			for name := range rec.Fields {
				if _, ok := def.Field(name); !ok {
					return nil, &EncodeError{Path: name, Reason: fmt.Sprintf("unknown field of %s", fqn)}
				}
			}
			out := make(map[string]any, len(fields))
			for _, f := range fields {
				x, ok := rec.Fields[f.name]
				if !ok {
					return nil, &EncodeError{Path: f.name, Reason: "missing field"}
				}
				enc, err := f.node.encode(x)
				if err != nil {
					return nil, atEncode(f.name, err)
				}
				out[f.name] = enc
			}
			return out, nil
		},

		decode: func(v any) (any, error) {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, decodeErrorf("expected map[string]any for %s, got %T", fqn, v)
			}
			out := &Record{Name: fqn, Fields: make(map[string]any, len(fields))}
			for _, f := range fields {
				x, ok := m[f.name]
				if !ok {
					if !f.hasDefault {
						return nil, &DecodeError{Path: f.name, Reason: "missing required field"}
					}
					x = f.fallback
				}
				dec, err := f.node.decode(x)
				if err != nil {
					return nil, atDecode(f.name, err)
				}
				out.Fields[f.name] = dec
			}
			return out, nil
		},

		dropPII: func(v any) (any, error) {
			rec, err := asRecord(v, fqn)
			if err != nil {
				return nil, err
			}
			out := &Record{Name: rec.Name, Fields: make(map[string]any, len(rec.Fields))}
			for _, f := range fields {
				x, ok := rec.Fields[f.name]
				if !ok {
					continue
				}
				if f.zero != nil {
					out.Fields[f.name] = f.zero()
					continue
				}
				clean, err := f.node.dropPII(x)
				if err != nil {
					return nil, atEncode(f.name, err)
				}
				out.Fields[f.name] = clean
			}
			return out, nil
		},

		random: func(_ *schema.RangeHint, depth int) random.Generator[any] {
			gens := make([]random.Field, len(fields))
			for i, f := range fields {
				gens[i] = random.Field{Name: f.name, Gen: f.node.random(f.hint, depth)}
			}
			return random.Map(random.Record(gens...), func(m map[string]any) any {
				return &Record{Name: fqn, Fields: m}
			})
		},
	}, nil
}

func asRecord(v any, fqn string) (*Record, error) {
	rec, ok := v.(*Record)
	if !ok {
		return nil, encodeErrorf("expected *codec.Record for %s, got %T", fqn, v)
	}
	if rec == nil {
		return nil, encodeErrorf("nil record for %s", fqn)
	}
	if rec.Name != fqn {
		return nil, encodeErrorf("record %s where %s was expected", rec.Name, fqn)
	}
	return rec, nil
}
