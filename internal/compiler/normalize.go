package compiler

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/primait/avrogen/internal/schema"
)

// NormalizeOptions controls naming during normalization.
type NormalizeOptions struct {
	// ScopeEmbedded qualifies nested definitions with their enclosing
	// record's name, so Foo's nested Unit becomes ns.Foo.Unit instead of
	// ns.Unit.
	ScopeEmbedded bool

	// DetectCollisions reports a second, different definition of an FQN
	// already in the table instead of silently keeping the first.
	// Only NormalizeChecked honours it.
	DetectCollisions bool
}

// Normalize extracts every record and enum definition in s into global,
// replacing each with a Reference, and qualifies dotless references with
// the enclosing namespace. Scoping applies to definitions only: a
// reference finds a scoped definition when one is visible and otherwise
// names the unscoped type. It returns the rewritten schema and the grown
// table; global itself is not modified.
//
// An FQN already present in global keeps its first definition.
func Normalize(s schema.Schema, global schema.GlobalTable, parentNS string, opts NormalizeOptions) (schema.Schema, schema.GlobalTable) {
	opts.DetectCollisions = false
	out, table, _ := NormalizeChecked(s, global, parentNS, opts)
	return out, table
}

// NormalizeChecked is Normalize with collision detection: when
// opts.DetectCollisions is set, a definition whose FQN is taken by a
// structurally different one yields a DependencyError with CodeCollision.
func NormalizeChecked(s schema.Schema, global schema.GlobalTable, parentNS string, opts NormalizeOptions) (schema.Schema, schema.GlobalTable, error) {
	n := &normalizer{opts: opts}
	out, table := n.normalize(s, global, parentNS)
	if len(n.collisions) > 0 {
		return out, table, &DependencyError{
			Code:    CodeCollision,
			Names:   sortedUnique(n.collisions),
			Message: "defined more than once with different content",
		}
	}
	return out, table, nil
}

type normalizer struct {
	opts       NormalizeOptions
	collisions []string

	// scopes holds the records being normalized, outermost first. Only
	// ScopeEmbedded fills it.
	scopes []scope
}

type scope struct {
	fqn string // scoped name of the record
	ns  string // namespace the record would have without scoping
}

func (n *normalizer) normalize(s schema.Schema, global schema.GlobalTable, parentNS string) (schema.Schema, schema.GlobalTable) {
	switch v := s.(type) {
	case schema.Primitive, schema.Logical:
		return v, global

	case schema.Reference:
		return schema.Reference{Name: n.resolve(v.Name, global, parentNS)}, global

	case schema.Array:
		var items schema.Schema
		items, global = n.normalize(v.Items, global, parentNS)
		return schema.Array{Items: items}, global

	case schema.Map:
		var values schema.Schema
		values, global = n.normalize(v.Values, global, parentNS)
		return schema.Map{Values: values}, global

	case schema.Union:
		members := make([]schema.Schema, len(v.Members))
		for i, m := range v.Members {
			members[i], global = n.normalize(m, global, parentNS)
		}
		return schema.Union{Members: members}, global

	case *schema.Record:
		ns, name := definitionName(v.Namespace, v.Name, parentNS)
		rec := &schema.Record{
			Name:      name,
			Namespace: ns,
			Doc:       v.Doc,
			Aliases:   v.Aliases,
			Fields:    make([]schema.Field, len(v.Fields)),
		}
		fieldNS := ns
		if n.opts.ScopeEmbedded {
			fieldNS = rec.FQN()
			outer := parentNS
			if len(n.scopes) > 0 {
				outer = n.scopes[len(n.scopes)-1].ns
			}
			unscoped, _ := definitionName(v.Namespace, v.Name, outer)
			n.scopes = append(n.scopes, scope{fqn: rec.FQN(), ns: unscoped})
		}
		for i, f := range v.Fields {
			f.Type, global = n.normalize(f.Type, global, fieldNS)
			rec.Fields[i] = f
		}
		if n.opts.ScopeEmbedded {
			n.scopes = n.scopes[:len(n.scopes)-1]
		}
		return schema.Reference{Name: rec.FQN()}, n.insert(global, rec)

	case *schema.Enum:
		ns, name := definitionName(v.Namespace, v.Name, parentNS)
		enum := *v
		enum.Name = name
		enum.Namespace = ns
		return schema.Reference{Name: enum.FQN()}, n.insert(global, &enum)

	default:
		return s, global
	}
}

// resolve qualifies a type name. Under ScopeEmbedded a dotless name is
// tried against the scope of each enclosing record, innermost first, and
// otherwise resolves the way it would without scoping.
func (n *normalizer) resolve(name string, global schema.GlobalTable, parentNS string) string {
	if len(n.scopes) == 0 || strings.Contains(name, ".") {
		return QualifiedName(parentNS, name)
	}
	for i := len(n.scopes) - 1; i >= 0; i-- {
		if fqn := QualifiedName(n.scopes[i].fqn, name); n.known(fqn, global) {
			return fqn
		}
	}
	return QualifiedName(n.scopes[len(n.scopes)-1].ns, name)
}

// known reports whether fqn is defined or is a record still being built.
func (n *normalizer) known(fqn string, global schema.GlobalTable) bool {
	if _, ok := global.Lookup(fqn); ok {
		return true
	}
	for _, sc := range n.scopes {
		if sc.fqn == fqn {
			return true
		}
	}
	return false
}

func (n *normalizer) insert(global schema.GlobalTable, def schema.Named) schema.GlobalTable {
	next, inserted := global.Insert(def)
	if !inserted && n.opts.DetectCollisions {
		existing, _ := global.Lookup(def.FQN())
		if !reflect.DeepEqual(schema.Marshal(existing), schema.Marshal(def)) {
			n.collisions = append(n.collisions, def.FQN())
		}
	}
	return next
}

// definitionName resolves the namespace and capitalised simple name of a
// record or enum. A dotted name carries its own namespace; otherwise the
// declared namespace wins over the enclosing one.
func definitionName(namespace, name, parentNS string) (string, string) {
	if ns, simple := schema.SplitFQN(name); ns != "" {
		return ns, Capitalize(simple)
	}
	if namespace == "" {
		namespace = parentNS
	}
	return namespace, Capitalize(name)
}

// QualifiedName resolves a type name as written in a schema against the
// enclosing namespace, capitalising the simple name the way definitions
// are.
func QualifiedName(parentNS, name string) string {
	if schema.IsPrimitiveName(name) {
		return name
	}
	ns, simple := definitionName("", name, parentNS)
	return schema.FQN(ns, simple)
}

// Capitalize upper-cases the first rune of name.
func Capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
