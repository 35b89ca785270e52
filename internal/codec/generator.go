package codec

import (
	"fmt"

	"github.com/primait/avrogen/internal/fuzzy"
	"github.com/primait/avrogen/internal/random"
	"github.com/primait/avrogen/internal/schema"
)

// node is the compiled operation set for one schema. random receives the
// number of records entered so far, which bounds recursive types.
type node struct {
	encode  func(native any) (any, error)
	decode  func(intermediate any) (any, error)
	dropPII func(native any) (any, error)
	random  func(hint *schema.RangeHint, depth int) random.Generator[any]

	// record is set when values of the node may contain a record.
	record bool
}

// Codec is the operation set for one schema.
type Codec struct {
	Schema schema.Schema
	n      *node
}

// Encode converts a native value to its intermediate form. A union that
// no member accepts passes the value through unchanged.
func (c *Codec) Encode(native any) (any, error) {
	return c.n.encode(native)
}

// Decode converts an intermediate value to its native form. A union that
// no member accepts returns the value unconverted and no error.
func (c *Codec) Decode(intermediate any) (any, error) {
	return c.n.decode(intermediate)
}

// DropPII returns a copy of native with every PII field replaced by the
// zero value of its type.
func (c *Codec) DropPII(native any) (any, error) {
	return c.n.dropPII(native)
}

// Random returns a generator of native values. hint constrains the
// generator for primitives, logical types and collections; records use
// the hints declared on their own fields.
func (c *Codec) Random(hint *schema.RangeHint) random.Generator[any] {
	return c.n.random(hint, 0)
}

// Unit is the generated codec for one record or enum.
type Unit struct {
	Codec
	Name string

	pii   bool
	index *fuzzy.Index
}

// ContainsPII reports whether values of the unit may carry PII. Every
// record answers true, whether or not it flags a field today.
func (u *Unit) ContainsPII() bool {
	return u.pii
}

// DecodeFuzzy decodes an enum symbol, mapping an unknown symbol to the
// most similar declared one before falling back to the default. Only
// enum units support it.
func (u *Unit) DecodeFuzzy(intermediate any, minSimilarity float64) (any, error) {
	enum, ok := u.Schema.(*schema.Enum)
	if !ok {
		return nil, fmt.Errorf("codec: %s is not an enum", u.Name)
	}
	s, ok := intermediate.(string)
	if !ok {
		return nil, decodeErrorf("expected string for enum %s, got %T", u.Name, intermediate)
	}
	if enum.HasSymbol(s) {
		return Symbol(s), nil
	}
	match := u.index.Match(s, enum.Default, minSimilarity)
	if match == "" {
		return nil, decodeErrorf("unknown symbol %q for enum %s", s, u.Name)
	}
	return Symbol(match), nil
}

// Generator holds one Unit per definition of a schema table.
type Generator struct {
	table schema.GlobalTable
	units map[string]*Unit
}

// New builds a Unit for every definition in table. Units are allocated
// before any is built, so recursive and mutually referring types resolve.
func New(table schema.GlobalTable) (*Generator, error) {
	g := &Generator{table: table, units: make(map[string]*Unit, table.Len())}

	for _, name := range table.Names() {
		def, _ := table.Lookup(name)
		g.units[name] = &Unit{Codec: Codec{Schema: def}, Name: name}
	}

	for _, name := range table.Names() {
		if err := g.build(g.units[name]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Unit returns the unit for fqn.
func (g *Generator) Unit(fqn string) (*Unit, bool) {
	u, ok := g.units[fqn]
	return u, ok
}

// Names returns the FQN of every unit in lexical order.
func (g *Generator) Names() []string {
	return g.table.Names()
}

// Codec builds the operation set for an arbitrary normalized schema, such
// as a root union, whose references resolve against the generator's units.
func (g *Generator) Codec(s schema.Schema) (*Codec, error) {
	n, err := g.compile(s, "")
	if err != nil {
		return nil, err
	}
	return &Codec{Schema: s, n: n}, nil
}

// ContainsPII reports whether values of s may carry PII: any record does,
// and so does any schema containing one.
func (g *Generator) ContainsPII(s schema.Schema) bool {
	switch v := s.(type) {
	case *schema.Record:
		return true
	case schema.Reference:
		u, ok := g.units[v.Name]
		return ok && u.pii
	case schema.Array:
		return g.ContainsPII(v.Items)
	case schema.Map:
		return g.ContainsPII(v.Values)
	case schema.Union:
		for _, m := range v.Members {
			if g.ContainsPII(m) {
				return true
			}
		}
	}
	return false
}

func (g *Generator) build(u *Unit) error {
	switch def := u.Schema.(type) {
	case *schema.Record:
		n, err := g.buildRecord(def)
		if err != nil {
			return err
		}
		u.n = n
		u.pii = true
	case *schema.Enum:
		u.n = g.buildEnum(def)
		u.index = fuzzy.NewIndex(def.Symbols)
	default:
		return &GenerationError{Code: CodeInlineDefinition, Name: u.Name, Message: fmt.Sprintf("unsupported definition %T", def)}
	}
	return nil
}

// compile dispatches on the schema variant. owner names the definition
// being built, for error reporting.
func (g *Generator) compile(s schema.Schema, owner string) (*node, error) {
	switch v := s.(type) {
	case schema.Primitive:
		return primitiveNode(v.Type), nil

	case schema.Logical:
		return logicalNode(v)

	case schema.Reference:
		u, ok := g.units[v.Name]
		if !ok {
			return nil, &GenerationError{Code: CodeUnresolved, Name: owner, Message: fmt.Sprintf("unresolved reference %q", v.Name)}
		}
		return referenceNode(u), nil

	case schema.Array:
		items, err := g.compile(v.Items, owner)
		if err != nil {
			return nil, err
		}
		return arrayNode(items), nil

	case schema.Map:
		values, err := g.compile(v.Values, owner)
		if err != nil {
			return nil, err
		}
		return mapNode(values), nil

	case schema.Union:
		members := make([]*node, len(v.Members))
		for i, m := range v.Members {
			n, err := g.compile(m, owner)
			if err != nil {
				return nil, err
			}
			members[i] = n
		}
		return unionNode(members), nil

	case *schema.Record, *schema.Enum:
		return nil, &GenerationError{
			Code:    CodeInlineDefinition,
			Name:    owner,
			Message: fmt.Sprintf("inline definition of %s; normalize the schema first", v.(schema.Named).FQN()),
		}

	default:
		return nil, &GenerationError{Code: CodeInlineDefinition, Name: owner, Message: fmt.Sprintf("unknown schema node %T", s)}
	}
}

// referenceNode delegates to u at call time, since u may not be built yet.
// Random values of a referenced record are generated one level deeper.
func referenceNode(u *Unit) *node {
	_, isRecord := u.Schema.(*schema.Record)
	return &node{
		encode:  func(v any) (any, error) { return u.n.encode(v) },
		decode:  func(v any) (any, error) { return u.n.decode(v) },
		dropPII: func(v any) (any, error) { return u.n.dropPII(v) },
		random: func(hint *schema.RangeHint, depth int) random.Generator[any] {
			if isRecord {
				depth++
			}
			return func(s random.State) (random.State, any) {
				return u.n.random(hint, depth)(s)
			}
		},
		record: isRecord,
	}
}
