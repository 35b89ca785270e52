package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primait/avrogen/internal/schema"
)

func record(fqn string, refs ...string) *schema.Record {
	ns, name := schema.SplitFQN(fqn)
	r := &schema.Record{Name: name, Namespace: ns}
	for _, ref := range refs {
		r.Fields = append(r.Fields, schema.Field{Name: "f" + ref, Type: schema.Reference{Name: ref}})
	}
	return r
}

func TestOrder_Empty(t *testing.T) {
	order, err := Order(schema.GlobalTable{})
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestOrder_DependencyFirst(t *testing.T) {
	table := schema.NewGlobalTable(record("A", "B"), record("B"))

	order, err := Order(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, order)
}

func TestOrder_Diamond(t *testing.T) {
	table := schema.NewGlobalTable(
		record("ns.Top", "ns.Left", "ns.Right"),
		record("ns.Left", "ns.Base"),
		record("ns.Right", "ns.Base"),
		record("ns.Base"),
		&schema.Enum{Name: "Alone", Namespace: "ns", Symbols: []string{"X"}},
	)

	order, err := Order(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"ns.Alone", "ns.Base", "ns.Left", "ns.Right", "ns.Top"}, order)
}

func TestOrder_SelfReferenceAllowed(t *testing.T) {
	table := schema.NewGlobalTable(record("ns.Node", "ns.Node"))

	order, err := Order(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"ns.Node"}, order)
}

func TestOrder_TwoNodeCycle(t *testing.T) {
	table := schema.NewGlobalTable(record("A", "B"), record("B", "A"))

	_, err := Order(table)
	require.Error(t, err)
	assert.True(t, IsCycleError(err))

	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"A", "B"}, de.Names)
	assert.Contains(t, de.Message, "A -> B -> A")
}

func TestOrder_NamesEveryCycleMember(t *testing.T) {
	table := schema.NewGlobalTable(
		record("A", "B"),
		record("B", "C"),
		record("C", "A"),
		record("D", "E"),
		record("E", "D"),
		record("F", "A"),
		record("G"),
	)

	_, err := Order(table)
	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeCycle, de.Code)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, de.Names, "F depends on a cycle but is not part of one")
}

func TestOrder_Unresolved(t *testing.T) {
	table := schema.NewGlobalTable(record("A", "Missing", "Gone"))

	_, err := Order(table)
	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeUnresolved, de.Code)
	assert.Equal(t, []string{"Gone", "Missing"}, de.Names)
	assert.False(t, IsCycleError(err))
}

func TestTarjanSCC(t *testing.T) {
	graph := dependencyGraph{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
		"d": {},
	}
	sccs := tarjanSCC(graph)
	assert.Len(t, sccs, 2)

	cycles := findCycles(graph)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a", "b", "c"}, cycles[0])
}

func TestReconstructCyclePath(t *testing.T) {
	graph := dependencyGraph{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}
	path := reconstructCyclePath([]string{"a", "b", "c"}, graph)
	assert.Equal(t, []string{"a", "b", "c", "a"}, path)
	assert.Equal(t, "a -> b -> c -> a", formatCyclePath(path))
	assert.Empty(t, reconstructCyclePath(nil, graph))
}
