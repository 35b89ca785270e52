package schema

import "fmt"

// logicalKey identifies a (type, logicalType) pair in the catalogue.
type logicalKey struct {
	underlying PrimitiveType
	name       string
}

// logicalCatalogue is the fixed set of supported logical types.
// Pairs outside it are rejected rather than downgraded to the primitive.
var logicalCatalogue = map[logicalKey]LogicalKind{
	{Bytes, "decimal"}:               Decimal,
	{String, "decimal"}:              DecimalString,
	{String, "uuid"}:                 UUID,
	{Int, "date"}:                    Date,
	{String, "date"}:                 DateString,
	{String, "datetime"}:             DatetimeString,
	{String, "iso-datetime"}:         DatetimeString,
	{Int, "time-millis"}:             TimeMillis,
	{Long, "time-micros"}:            TimeMicros,
	{Long, "timestamp-millis"}:       TimestampMillis,
	{Long, "timestamp-micros"}:       TimestampMicros,
	{Long, "local-timestamp-millis"}: LocalTimestampMillis,
	{Long, "local-timestamp-micros"}: LocalTimestampMicros,
}

// Parse converts a decoded JSON schema document into IR.
//
// The document is the output of a JSON decoder: a string names a primitive
// or a reference, a list is a union and an object dispatches on its "type"
// and "logicalType" attributes.
func Parse(doc any) (Schema, error) {
	switch v := doc.(type) {
	case string:
		if v == "" {
			return nil, &ShapeError{Message: "type name must not be empty"}
		}
		if p, ok := primitiveTypes[v]; ok {
			return Primitive{Type: p}, nil
		}
		return Reference{Name: v}, nil

	case []any:
		members := make([]Schema, 0, len(v))
		for i, m := range v {
			s, err := Parse(m)
			if err != nil {
				return nil, withPrefix(fmt.Sprintf("[%d]", i), err)
			}
			members = append(members, s)
		}
		u, err := NewUnion(members...)
		if err != nil {
			return nil, err
		}
		return u, nil

	case map[string]any:
		return parseObject(v)

	case nil:
		return nil, &ShapeError{Message: "schema must not be null"}

	default:
		return nil, &ShapeError{Message: fmt.Sprintf("unsupported schema value of type %T", doc)}
	}
}

// parseObject dispatches a schema object on its type/logicalType keys.
func parseObject(obj map[string]any) (Schema, error) {
	typ, ok := obj["type"]
	if !ok {
		return nil, &ShapeError{Path: "type", Message: "type attribute is required"}
	}

	if lt, ok := obj["logicalType"]; ok {
		return parseLogical(obj, typ, lt)
	}

	name, ok := typ.(string)
	if !ok {
		// {"type": {...}} or {"type": [...]}: the object only wraps a schema.
		s, err := Parse(typ)
		if err != nil {
			return nil, withPrefix("type", err)
		}
		return s, nil
	}

	switch name {
	case "record", "error":
		return parseRecord(obj)
	case "enum":
		return parseEnum(obj)
	case "array":
		items, ok := obj["items"]
		if !ok {
			return nil, &ShapeError{Path: "items", Message: "array requires items"}
		}
		s, err := Parse(items)
		if err != nil {
			return nil, withPrefix("items", err)
		}
		return Array{Items: s}, nil
	case "map":
		values, ok := obj["values"]
		if !ok {
			return nil, &ShapeError{Path: "values", Message: "map requires values"}
		}
		s, err := Parse(values)
		if err != nil {
			return nil, withPrefix("values", err)
		}
		return Map{Values: s}, nil
	case "fixed":
		return nil, &ShapeError{Path: "type", Message: "fixed types are not supported"}
	default:
		return Parse(name)
	}
}

// parseLogical resolves a type/logicalType pair against the catalogue.
func parseLogical(obj map[string]any, typ, lt any) (Schema, error) {
	typName, ok := typ.(string)
	if !ok {
		return nil, &ShapeError{Path: "type", Message: "logical types require a primitive type"}
	}
	ltName, ok := lt.(string)
	if !ok {
		return nil, &ShapeError{Path: "logicalType", Message: "logicalType must be a string"}
	}
	prim, ok := primitiveTypes[typName]
	if !ok {
		return nil, &ShapeError{Path: "type", Message: fmt.Sprintf("unsupported type %q for logicalType %q", typName, ltName)}
	}
	kind, ok := logicalCatalogue[logicalKey{prim, ltName}]
	if !ok {
		return nil, &ShapeError{
			Path:    "logicalType",
			Message: fmt.Sprintf("unsupported logicalType %q on type %q", ltName, typName),
		}
	}

	l := Logical{Underlying: prim, Kind: kind}
	if kind == Decimal || kind == DecimalString {
		p, hasP := obj["precision"]
		if hasP {
			n, ok := AsInt(p)
			if !ok || n <= 0 {
				return nil, &ShapeError{Path: "precision", Message: "precision must be a positive integer"}
			}
			l.Precision = int(n)
		} else if kind == Decimal {
			return nil, &ShapeError{Path: "precision", Message: "decimal requires precision"}
		}
		if s, ok := obj["scale"]; ok {
			n, ok := AsInt(s)
			if !ok || n < 0 {
				return nil, &ShapeError{Path: "scale", Message: "scale must be a non-negative integer"}
			}
			if hasP && int(n) > l.Precision {
				return nil, &ShapeError{Path: "scale", Message: "scale must not exceed precision"}
			}
			l.Scale = int(n)
		}
	}
	return l, nil
}

func parseRecord(obj map[string]any) (Schema, error) {
	r := &Record{}
	var err error
	if r.Name, err = requiredString(obj, "name"); err != nil {
		return nil, err
	}
	if r.Namespace, err = optString(obj, "namespace"); err != nil {
		return nil, err
	}
	if r.Doc, err = optString(obj, "doc"); err != nil {
		return nil, err
	}
	if r.Aliases, err = optStringList(obj, "aliases"); err != nil {
		return nil, err
	}

	rawFields, ok := obj["fields"]
	if !ok {
		return nil, &ShapeError{Path: "fields", Message: "record requires fields"}
	}
	list, ok := rawFields.([]any)
	if !ok {
		return nil, &ShapeError{Path: "fields", Message: "fields must be a list"}
	}

	r.Fields = make([]Field, 0, len(list))
	for i, raw := range list {
		f, err := parseField(raw)
		if err != nil {
			return nil, withPrefix(fmt.Sprintf("fields[%d]", i), err)
		}
		r.Fields = append(r.Fields, f)
	}
	return r, nil
}

func parseField(raw any) (Field, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Field{}, &ShapeError{Message: "field must be an object"}
	}

	var f Field
	var err error
	if f.Name, err = requiredString(obj, "name"); err != nil {
		return Field{}, err
	}
	typ, ok := obj["type"]
	if !ok {
		return Field{}, &ShapeError{Path: "type", Message: "field requires type"}
	}
	if f.Type, err = Parse(typ); err != nil {
		return Field{}, withPrefix("type", err)
	}
	if f.Doc, err = optString(obj, "doc"); err != nil {
		return Field{}, err
	}
	if f.Order, err = optString(obj, "order"); err != nil {
		return Field{}, err
	}
	if f.Aliases, err = optStringList(obj, "aliases"); err != nil {
		return Field{}, err
	}
	f.Default, f.HasDefault = obj["default"]

	if v, ok := obj["pii"]; ok {
		b, ok := v.(bool)
		if !ok {
			return Field{}, &ShapeError{Path: "pii", Message: "pii must be a boolean"}
		}
		f.PII = b
	}
	if v, ok := obj["range"]; ok {
		if f.Range, err = ParseRangeHint(v); err != nil {
			return Field{}, withPrefix("range", err)
		}
	}
	return f, nil
}

func parseEnum(obj map[string]any) (Schema, error) {
	e := &Enum{}
	var err error
	if e.Name, err = requiredString(obj, "name"); err != nil {
		return nil, err
	}
	if e.Namespace, err = optString(obj, "namespace"); err != nil {
		return nil, err
	}
	if e.Doc, err = optString(obj, "doc"); err != nil {
		return nil, err
	}
	if e.Aliases, err = optStringList(obj, "aliases"); err != nil {
		return nil, err
	}
	if _, ok := obj["symbols"]; !ok {
		return nil, &ShapeError{Path: "symbols", Message: "enum requires symbols"}
	}
	if e.Symbols, err = optStringList(obj, "symbols"); err != nil {
		return nil, err
	}
	if e.Default, err = optString(obj, "default"); err != nil {
		return nil, err
	}
	if e.PreferredSubset, err = optStringList(obj, "preferred_subset"); err != nil {
		return nil, err
	}
	return e, nil
}

func requiredString(obj map[string]any, key string) (string, error) {
	s, err := optString(obj, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &ShapeError{Path: key, Message: key + " is required"}
	}
	return s, nil
}

func optStringList(obj map[string]any, key string) ([]string, error) {
	v, ok := obj[key]
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{Path: key, Message: "must be a list of strings"}
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, &ShapeError{Path: fmt.Sprintf("%s[%d]", key, i), Message: "must be a string"}
		}
		out = append(out, s)
	}
	return out, nil
}
