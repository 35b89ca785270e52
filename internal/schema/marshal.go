package schema

import (
	"encoding/json"
	"fmt"
)

// Marshal converts IR back into a schema document made of maps, lists and
// strings. References render as their name, so a normalized schema
// marshals to a document that points at its dependencies instead of
// inlining them.
func Marshal(s Schema) any {
	switch v := s.(type) {
	case Primitive:
		return string(v.Type)

	case Logical:
		doc := map[string]any{
			"type":        string(v.Underlying),
			"logicalType": v.AvroName(),
		}
		if (v.Kind == Decimal || v.Kind == DecimalString) && v.Precision > 0 {
			doc["precision"] = v.Precision
			doc["scale"] = v.Scale
		}
		return doc

	case *Record:
		fields := make([]any, 0, len(v.Fields))
		for _, f := range v.Fields {
			fields = append(fields, marshalField(f))
		}
		doc := map[string]any{
			"type":   "record",
			"name":   v.Name,
			"fields": fields,
		}
		putNamedAttrs(doc, v.Namespace, v.Doc, v.Aliases)
		return doc

	case *Enum:
		doc := map[string]any{
			"type":    "enum",
			"name":    v.Name,
			"symbols": v.Symbols,
		}
		putNamedAttrs(doc, v.Namespace, v.Doc, v.Aliases)
		if v.Default != "" {
			doc["default"] = v.Default
		}
		if len(v.PreferredSubset) > 0 {
			doc["preferred_subset"] = v.PreferredSubset
		}
		return doc

	case Array:
		return map[string]any{"type": "array", "items": Marshal(v.Items)}

	case Map:
		return map[string]any{"type": "map", "values": Marshal(v.Values)}

	case Union:
		members := make([]any, 0, len(v.Members))
		for _, m := range v.Members {
			members = append(members, Marshal(m))
		}
		return members

	case Reference:
		return v.Name

	default:
		panic(fmt.Sprintf("schema: unknown node %T", s))
	}
}

func marshalField(f Field) map[string]any {
	doc := map[string]any{
		"name": f.Name,
		"type": Marshal(f.Type),
	}
	if f.HasDefault {
		doc["default"] = f.Default
	}
	if f.Doc != "" {
		doc["doc"] = f.Doc
	}
	if f.Order != "" {
		doc["order"] = f.Order
	}
	if len(f.Aliases) > 0 {
		doc["aliases"] = f.Aliases
	}
	if f.PII {
		doc["pii"] = true
	}
	if f.Range != nil {
		doc["range"] = f.Range.doc()
	}
	return doc
}

func putNamedAttrs(doc map[string]any, namespace, docString string, aliases []string) {
	if namespace != "" {
		doc["namespace"] = namespace
	}
	if docString != "" {
		doc["doc"] = docString
	}
	if len(aliases) > 0 {
		doc["aliases"] = aliases
	}
}

// MarshalJSON renders a schema as indented JSON with sorted object keys.
func MarshalJSON(s Schema) ([]byte, error) {
	data, err := json.MarshalIndent(Marshal(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
