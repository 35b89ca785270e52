package compiler

import (
	"github.com/primait/avrogen/internal/schema"
)

// Standalone returns a self-contained schema for the definition named fqn:
// every referenced definition is inlined at its first use and referred to
// by name afterwards, which is the form Avro parsers accept.
func Standalone(fqn string, table schema.GlobalTable) (schema.Schema, error) {
	in := &inliner{table: table, emitted: make(map[string]bool)}
	out := in.inline(schema.Reference{Name: fqn})
	if len(in.missing) > 0 {
		return nil, &DependencyError{
			Code:    CodeUnresolved,
			Names:   sortedUnique(in.missing),
			Message: "referenced but not defined",
		}
	}
	return out, nil
}

// StandaloneJSON renders Standalone as indented JSON.
func StandaloneJSON(fqn string, table schema.GlobalTable) ([]byte, error) {
	s, err := Standalone(fqn, table)
	if err != nil {
		return nil, err
	}
	return schema.MarshalJSON(s)
}

type inliner struct {
	table   schema.GlobalTable
	emitted map[string]bool
	missing []string
}

func (in *inliner) inline(s schema.Schema) schema.Schema {
	switch v := s.(type) {
	case schema.Reference:
		if in.emitted[v.Name] {
			return v
		}
		def, ok := in.table.Lookup(v.Name)
		if !ok {
			in.missing = append(in.missing, v.Name)
			return v
		}
		in.emitted[v.Name] = true
		return in.inline(def)

	case *schema.Record:
		rec := *v
		rec.Fields = make([]schema.Field, len(v.Fields))
		for i, f := range v.Fields {
			f.Type = in.inline(f.Type)
			rec.Fields[i] = f
		}
		return &rec

	case schema.Array:
		return schema.Array{Items: in.inline(v.Items)}

	case schema.Map:
		return schema.Map{Values: in.inline(v.Values)}

	case schema.Union:
		members := make([]schema.Schema, len(v.Members))
		for i, m := range v.Members {
			members[i] = in.inline(m)
		}
		return schema.Union{Members: members}

	default:
		return s
	}
}
