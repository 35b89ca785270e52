package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalTable_InsertIfAbsent(t *testing.T) {
	first := &Enum{Name: "Unit", Namespace: "ns", Symbols: []string{"KG"}}
	second := &Enum{Name: "Unit", Namespace: "ns", Symbols: []string{"LB"}}

	var table GlobalTable
	table, inserted := table.Insert(first)
	require.True(t, inserted)

	table, inserted = table.Insert(second)
	assert.False(t, inserted, "second writer must not replace the first")

	got, ok := table.Lookup("ns.Unit")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestGlobalTable_InsertDoesNotMutateReceiver(t *testing.T) {
	base := NewGlobalTable(&Enum{Name: "A", Symbols: []string{"X"}})

	next, inserted := base.Insert(&Enum{Name: "B", Symbols: []string{"Y"}})
	require.True(t, inserted)

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, next.Len())
	_, ok := base.Lookup("B")
	assert.False(t, ok)
}

func TestGlobalTable_Names(t *testing.T) {
	table := NewGlobalTable(
		&Record{Name: "Zed", Namespace: "ns"},
		&Record{Name: "Alpha", Namespace: "ns"},
		&Enum{Name: "Mid", Namespace: "ns"},
	)
	assert.Equal(t, []string{"ns.Alpha", "ns.Mid", "ns.Zed"}, table.Names())
}

func TestGlobalTable_Merge(t *testing.T) {
	a := NewGlobalTable(&Enum{Name: "Shared", Symbols: []string{"A"}})
	b := NewGlobalTable(
		&Enum{Name: "Shared", Symbols: []string{"B"}},
		&Enum{Name: "Other", Symbols: []string{"C"}},
	)

	merged := a.Merge(b)
	assert.Equal(t, []string{"Other", "Shared"}, merged.Names())

	shared, _ := merged.Lookup("Shared")
	assert.Equal(t, []string{"A"}, shared.(*Enum).Symbols)
}

func TestGlobalTable_ZeroValue(t *testing.T) {
	var table GlobalTable
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Names())
	_, ok := table.Lookup("anything")
	assert.False(t, ok)
}
