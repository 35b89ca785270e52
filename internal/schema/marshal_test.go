package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_ParseInverse(t *testing.T) {
	src := `{
		"type": "record",
		"name": "Order",
		"namespace": "shop",
		"fields": [
			{"name": "id", "type": {"type": "string", "logicalType": "uuid"}},
			{"name": "total", "type": {"type": "bytes", "logicalType": "decimal", "precision": 8, "scale": 2}},
			{"name": "email", "type": "string", "pii": true, "range": {"string": {"max_length": 12}}},
			{"name": "status", "type": {"type": "enum", "name": "Status", "symbols": ["OPEN", "CLOSED"], "default": "OPEN"}},
			{"name": "lines", "type": {"type": "array", "items": "shop.Line"}},
			{"name": "note", "type": ["null", "string"], "default": null}
		]
	}`
	original, err := Parse(decode(t, src))
	require.NoError(t, err)

	data, err := MarshalJSON(original)
	require.NoError(t, err)

	var doc any
	require.NoError(t, json.Unmarshal(data, &doc))
	reparsed, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, original, reparsed)
}

func TestMarshal_ReferenceRendersAsName(t *testing.T) {
	assert.Equal(t, "ns.Foo", Marshal(Reference{Name: "ns.Foo"}))
	assert.Equal(t, []any{"null", "ns.Foo"}, Marshal(Union{Members: []Schema{
		Primitive{Type: Null},
		Reference{Name: "ns.Foo"},
	}}))
}

func TestMarshalJSON_SortedKeys(t *testing.T) {
	data, err := MarshalJSON(&Enum{Name: "Unit", Namespace: "ns", Symbols: []string{"KG"}})
	require.NoError(t, err)

	expected := `{
  "name": "Unit",
  "namespace": "ns",
  "symbols": [
    "KG"
  ],
  "type": "enum"
}`
	assert.Equal(t, expected, string(data))
}
