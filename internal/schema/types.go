package schema

import (
	"fmt"
	"strings"
)

// Schema is a sealed interface representing one node of the type IR.
// Only Primitive, Logical, *Record, *Enum, Array, Map, Union and Reference
// implement it.
type Schema interface {
	schemaNode() // Sealed - only these types implement it
}

// PrimitiveType is the tag of an Avro primitive.
type PrimitiveType string

// Primitive tags.
const (
	Null    PrimitiveType = "null"
	Boolean PrimitiveType = "boolean"
	Int     PrimitiveType = "int"
	Long    PrimitiveType = "long"
	Float   PrimitiveType = "float"
	Double  PrimitiveType = "double"
	Bytes   PrimitiveType = "bytes"
	String  PrimitiveType = "string"
)

// primitiveTypes is the primitive set recognised by the parser.
var primitiveTypes = map[string]PrimitiveType{
	"null":    Null,
	"boolean": Boolean,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"bytes":   Bytes,
	"string":  String,
}

// IsPrimitiveName reports whether name is one of the Avro primitive names.
func IsPrimitiveName(name string) bool {
	_, ok := primitiveTypes[name]
	return ok
}

// Primitive is an Avro primitive type.
type Primitive struct {
	Type PrimitiveType
}

func (Primitive) schemaNode() {}

// LogicalKind is the semantic tag of a logical type.
type LogicalKind string

// Logical kinds supported by the catalogue. Anything else fails to parse.
const (
	Decimal              LogicalKind = "decimal"
	DecimalString        LogicalKind = "decimal-string"
	UUID                 LogicalKind = "uuid"
	Date                 LogicalKind = "date"
	DateString           LogicalKind = "date-string"
	DatetimeString       LogicalKind = "datetime-string"
	TimeMillis           LogicalKind = "time-millis"
	TimeMicros           LogicalKind = "time-micros"
	TimestampMillis      LogicalKind = "timestamp-millis"
	TimestampMicros      LogicalKind = "timestamp-micros"
	LocalTimestampMillis LogicalKind = "local-timestamp-millis"
	LocalTimestampMicros LogicalKind = "local-timestamp-micros"
)

// Logical is a primitive annotated with a semantic refinement.
// Precision and Scale are only meaningful for the decimal kinds.
type Logical struct {
	Underlying PrimitiveType
	Kind       LogicalKind
	Precision  int
	Scale      int
}

func (Logical) schemaNode() {}

// AvroName returns the logicalType attribute value used in schema documents.
func (l Logical) AvroName() string {
	switch l.Kind {
	case DecimalString:
		return "decimal"
	case DateString:
		return "date"
	case DatetimeString:
		return "datetime"
	default:
		return string(l.Kind)
	}
}

// Named is implemented by the schema variants that own an FQN.
type Named interface {
	Schema
	FQN() string
}

// Record is an Avro record definition.
type Record struct {
	Name      string
	Namespace string
	Doc       string
	Aliases   []string
	Fields    []Field
}

func (*Record) schemaNode() {}

// FQN returns the fully-qualified name of the record.
func (r *Record) FQN() string {
	return FQN(r.Namespace, r.Name)
}

// Field returns the field with the given name.
func (r *Record) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Field is a single record field.
type Field struct {
	Name       string
	Type       Schema
	Doc        string
	Default    any  // JSON form of the default, valid only when HasDefault
	HasDefault bool // distinguishes an absent default from "default": null
	Order      string
	Aliases    []string

	// PII flags the field for redaction by the generated drop-PII logic.
	PII bool

	// Range constrains the random generator for this field (nil = defaults).
	Range *RangeHint
}

// Enum is an Avro enumeration definition.
type Enum struct {
	Name            string
	Namespace       string
	Doc             string
	Aliases         []string
	Symbols         []string
	Default         string // empty when no default symbol is declared
	PreferredSubset []string
}

func (*Enum) schemaNode() {}

// FQN returns the fully-qualified name of the enum.
func (e *Enum) FQN() string {
	return FQN(e.Namespace, e.Name)
}

// HasSymbol reports whether sym is one of the declared symbols.
func (e *Enum) HasSymbol(sym string) bool {
	for _, s := range e.Symbols {
		if s == sym {
			return true
		}
	}
	return false
}

// Array is an Avro array.
type Array struct {
	Items Schema
}

func (Array) schemaNode() {}

// Map is an Avro map; keys are always strings.
type Map struct {
	Values Schema
}

func (Map) schemaNode() {}

// Union is an ordered list of member schemas. The first member is the
// implicit default type. Build unions with NewUnion.
type Union struct {
	Members []Schema
}

func (Union) schemaNode() {}

// Reference is a placeholder for a named type resolved against a
// GlobalTable at generation time.
type Reference struct {
	Name string
}

func (Reference) schemaNode() {}

// NewUnion validates the Avro union rules and returns the union.
//
// Rules:
//   - a union may not directly contain another union
//   - at most one member per distinct name (records, enums and references
//     by name; primitives, arrays and maps by kind)
func NewUnion(members ...Schema) (Union, error) {
	seen := make(map[string]bool, len(members))
	for i, m := range members {
		if _, nested := m.(Union); nested {
			return Union{}, &ShapeError{
				Path:    fmt.Sprintf("[%d]", i),
				Message: "unions may not immediately contain other unions",
			}
		}
		key := unionKey(m)
		if seen[key] {
			return Union{}, &ShapeError{
				Path:    fmt.Sprintf("[%d]", i),
				Message: fmt.Sprintf("duplicate union member %q", key),
			}
		}
		seen[key] = true
	}
	return Union{Members: members}, nil
}

// unionKey is the name Avro uses to tell union branches apart.
func unionKey(s Schema) string {
	switch v := s.(type) {
	case Primitive:
		return string(v.Type)
	case Logical:
		// Logical members are distinguished by their underlying type.
		return string(v.Underlying)
	case *Record:
		return v.FQN()
	case *Enum:
		return v.FQN()
	case Reference:
		return v.Name
	case Array:
		return "array"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("%T", s)
	}
}

// FQN joins a namespace and a name. A name that already contains a dot is
// treated as fully qualified.
func FQN(namespace, name string) string {
	if namespace == "" || strings.Contains(name, ".") {
		return name
	}
	return namespace + "." + name
}

// SplitFQN splits a fully-qualified name into namespace and simple name.
func SplitFQN(fqn string) (namespace, name string) {
	i := strings.LastIndex(fqn, ".")
	if i < 0 {
		return "", fqn
	}
	return fqn[:i], fqn[i+1:]
}
