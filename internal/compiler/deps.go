package compiler

import (
	"sort"

	"github.com/primait/avrogen/internal/schema"
)

// ExternalDependencies returns the FQNs s refers to but does not define,
// sorted and de-duplicated. Within a record, a type defined inline by an
// earlier field (or the record itself) is not external when a later field
// refers to it by name. Names are resolved the way Normalize resolves them.
func ExternalDependencies(s schema.Schema) []string {
	var out []string
	collectExternal(s, "", map[string]bool{}, &out)
	return sortedUnique(out)
}

func collectExternal(s schema.Schema, parentNS string, defined map[string]bool, out *[]string) {
	switch v := s.(type) {
	case schema.Reference:
		fqn := QualifiedName(parentNS, v.Name)
		if !defined[fqn] {
			*out = append(*out, fqn)
		}

	case schema.Array:
		collectExternal(v.Items, parentNS, defined, out)

	case schema.Map:
		collectExternal(v.Values, parentNS, defined, out)

	case schema.Union:
		for _, m := range v.Members {
			collectExternal(m, parentNS, defined, out)
			addDefinitions(m, parentNS, defined)
		}

	case *schema.Record:
		ns, name := definitionName(v.Namespace, v.Name, parentNS)
		siblings := copySet(defined)
		siblings[schema.FQN(ns, name)] = true
		for _, f := range v.Fields {
			collectExternal(f.Type, ns, siblings, out)
			addDefinitions(f.Type, ns, siblings)
		}
	}
}

// addDefinitions marks every record and enum defined inline in s.
func addDefinitions(s schema.Schema, parentNS string, defined map[string]bool) {
	switch v := s.(type) {
	case schema.Array:
		addDefinitions(v.Items, parentNS, defined)
	case schema.Map:
		addDefinitions(v.Values, parentNS, defined)
	case schema.Union:
		for _, m := range v.Members {
			addDefinitions(m, parentNS, defined)
		}
	case *schema.Record:
		ns, name := definitionName(v.Namespace, v.Name, parentNS)
		defined[schema.FQN(ns, name)] = true
		for _, f := range v.Fields {
			addDefinitions(f.Type, ns, defined)
		}
	case *schema.Enum:
		ns, name := definitionName(v.Namespace, v.Name, parentNS)
		defined[schema.FQN(ns, name)] = true
	}
}

// References returns the FQNs a normalized definition refers to directly,
// sorted and de-duplicated.
func References(def schema.Named) []string {
	rec, ok := def.(*schema.Record)
	if !ok {
		return nil
	}
	var out []string
	for _, f := range rec.Fields {
		collectReferences(f.Type, &out)
	}
	return sortedUnique(out)
}

func collectReferences(s schema.Schema, out *[]string) {
	switch v := s.(type) {
	case schema.Reference:
		*out = append(*out, v.Name)
	case schema.Array:
		collectReferences(v.Items, out)
	case schema.Map:
		collectReferences(v.Values, out)
	case schema.Union:
		for _, m := range v.Members {
			collectReferences(m, out)
		}
	}
}

func copySet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedUnique(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	out := sorted[:1]
	for _, n := range sorted[1:] {
		if n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return out
}
