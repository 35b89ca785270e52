package schema

import "sort"

// GlobalTable maps FQNs to their resolved record or enum definitions.
//
// A GlobalTable is a value: Insert returns a new table and never modifies
// the receiver, so normalization can thread it through a traversal as an
// ordinary accumulator. The zero value is an empty table.
type GlobalTable struct {
	entries map[string]Named
}

// NewGlobalTable returns a table holding the given definitions.
// Later duplicates are ignored (first writer wins).
func NewGlobalTable(defs ...Named) GlobalTable {
	t := GlobalTable{}
	for _, d := range defs {
		t, _ = t.Insert(d)
	}
	return t
}

// Insert adds def under its FQN if the name is not already present.
// It returns the resulting table and whether def was inserted.
// An existing entry always wins, so identical embedded siblings collapse to
// a single definition.
func (t GlobalTable) Insert(def Named) (GlobalTable, bool) {
	fqn := def.FQN()
	if _, exists := t.entries[fqn]; exists {
		return t, false
	}
	next := make(map[string]Named, len(t.entries)+1)
	for k, v := range t.entries {
		next[k] = v
	}
	next[fqn] = def
	return GlobalTable{entries: next}, true
}

// Lookup returns the definition registered under fqn.
func (t GlobalTable) Lookup(fqn string) (Named, bool) {
	d, ok := t.entries[fqn]
	return d, ok
}

// Len returns the number of definitions.
func (t GlobalTable) Len() int {
	return len(t.entries)
}

// Names returns all FQNs in lexical order.
func (t GlobalTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for k := range t.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge returns a table containing the entries of t followed by those of
// other that t does not already define.
func (t GlobalTable) Merge(other GlobalTable) GlobalTable {
	out := t
	for _, name := range other.Names() {
		out, _ = out.Insert(other.entries[name])
	}
	return out
}
