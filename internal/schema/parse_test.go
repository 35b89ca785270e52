package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode parses a JSON literal into the generic document shape Parse expects.
func decode(t *testing.T, src string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(src), &doc))
	return doc
}

func TestParse_Primitives(t *testing.T) {
	for name, want := range primitiveTypes {
		s, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, Primitive{Type: want}, s)
	}
}

func TestParse_StringReference(t *testing.T) {
	s, err := Parse("com.example.Address")
	require.NoError(t, err)
	assert.Equal(t, Reference{Name: "com.example.Address"}, s)
}

func TestParse_Union(t *testing.T) {
	s, err := Parse(decode(t, `["null", "string", "ns.Foo"]`))
	require.NoError(t, err)

	u, ok := s.(Union)
	require.True(t, ok)
	assert.Equal(t, []Schema{
		Primitive{Type: Null},
		Primitive{Type: String},
		Reference{Name: "ns.Foo"},
	}, u.Members)
}

func TestParse_NestedUnionRejected(t *testing.T) {
	_, err := Parse(decode(t, `["null", ["int", "string"]]`))
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

func TestParse_Record(t *testing.T) {
	doc := decode(t, `{
		"type": "record",
		"name": "Person",
		"namespace": "com.example",
		"doc": "A person",
		"fields": [
			{"name": "name", "type": "string", "pii": true},
			{"name": "age", "type": "int", "default": 0, "range": {"int": {"min": 0, "max": 120}}},
			{"name": "tags", "type": {"type": "array", "items": "string"}},
			{"name": "attrs", "type": {"type": "map", "values": "long"}},
			{"name": "nickname", "type": ["null", "string"], "default": null}
		]
	}`)

	s, err := Parse(doc)
	require.NoError(t, err)

	r, ok := s.(*Record)
	require.True(t, ok)
	assert.Equal(t, "Person", r.Name)
	assert.Equal(t, "com.example", r.Namespace)
	assert.Equal(t, "com.example.Person", r.FQN())
	assert.Equal(t, "A person", r.Doc)
	require.Len(t, r.Fields, 5)

	assert.True(t, r.Fields[0].PII)
	assert.False(t, r.Fields[0].HasDefault)

	assert.True(t, r.Fields[1].HasDefault)
	assert.Equal(t, float64(0), r.Fields[1].Default)
	require.NotNil(t, r.Fields[1].Range)
	assert.Equal(t, &IntRange{Min: 0, Max: 120}, r.Fields[1].Range.Int)

	assert.Equal(t, Array{Items: Primitive{Type: String}}, r.Fields[2].Type)
	assert.Equal(t, Map{Values: Primitive{Type: Long}}, r.Fields[3].Type)

	assert.True(t, r.Fields[4].HasDefault, "explicit null default must be kept")
	assert.Nil(t, r.Fields[4].Default)
}

func TestParse_Enum(t *testing.T) {
	doc := decode(t, `{
		"type": "enum",
		"name": "Status",
		"symbols": ["ACTIVE", "INACTIVE", "UNKNOWN"],
		"default": "UNKNOWN",
		"preferred_subset": ["ACTIVE"]
	}`)

	s, err := Parse(doc)
	require.NoError(t, err)

	e, ok := s.(*Enum)
	require.True(t, ok)
	assert.Equal(t, []string{"ACTIVE", "INACTIVE", "UNKNOWN"}, e.Symbols)
	assert.Equal(t, "UNKNOWN", e.Default)
	assert.Equal(t, []string{"ACTIVE"}, e.PreferredSubset)
}

func TestParse_LogicalCatalogue(t *testing.T) {
	tests := []struct {
		src  string
		want Logical
	}{
		{`{"type": "bytes", "logicalType": "decimal", "precision": 10, "scale": 2}`,
			Logical{Underlying: Bytes, Kind: Decimal, Precision: 10, Scale: 2}},
		{`{"type": "string", "logicalType": "decimal"}`,
			Logical{Underlying: String, Kind: DecimalString}},
		{`{"type": "string", "logicalType": "uuid"}`,
			Logical{Underlying: String, Kind: UUID}},
		{`{"type": "int", "logicalType": "date"}`,
			Logical{Underlying: Int, Kind: Date}},
		{`{"type": "string", "logicalType": "date"}`,
			Logical{Underlying: String, Kind: DateString}},
		{`{"type": "string", "logicalType": "datetime"}`,
			Logical{Underlying: String, Kind: DatetimeString}},
		{`{"type": "string", "logicalType": "iso-datetime"}`,
			Logical{Underlying: String, Kind: DatetimeString}},
		{`{"type": "int", "logicalType": "time-millis"}`,
			Logical{Underlying: Int, Kind: TimeMillis}},
		{`{"type": "long", "logicalType": "time-micros"}`,
			Logical{Underlying: Long, Kind: TimeMicros}},
		{`{"type": "long", "logicalType": "timestamp-millis"}`,
			Logical{Underlying: Long, Kind: TimestampMillis}},
		{`{"type": "long", "logicalType": "timestamp-micros"}`,
			Logical{Underlying: Long, Kind: TimestampMicros}},
		{`{"type": "long", "logicalType": "local-timestamp-millis"}`,
			Logical{Underlying: Long, Kind: LocalTimestampMillis}},
		{`{"type": "long", "logicalType": "local-timestamp-micros"}`,
			Logical{Underlying: Long, Kind: LocalTimestampMicros}},
	}
	for _, tt := range tests {
		t.Run(string(tt.want.Kind), func(t *testing.T) {
			s, err := Parse(decode(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{"unknown logical type", `{"type": "string", "logicalType": "color"}`, `unsupported logicalType "color"`},
		{"logical on wrong primitive", `{"type": "long", "logicalType": "date"}`, `unsupported logicalType "date" on type "long"`},
		{"decimal without precision", `{"type": "bytes", "logicalType": "decimal"}`, "decimal requires precision"},
		{"scale above precision", `{"type": "bytes", "logicalType": "decimal", "precision": 2, "scale": 3}`, "scale must not exceed precision"},
		{"fixed", `{"type": "fixed", "name": "F", "size": 4}`, "fixed types are not supported"},
		{"missing type", `{"name": "x"}`, "type attribute is required"},
		{"record without name", `{"type": "record", "fields": []}`, "name is required"},
		{"record without fields", `{"type": "record", "name": "R"}`, "record requires fields"},
		{"enum without symbols", `{"type": "enum", "name": "E"}`, "enum requires symbols"},
		{"array without items", `{"type": "array"}`, "array requires items"},
		{"pii not bool", `{"type": "record", "name": "R", "fields": [{"name": "a", "type": "string", "pii": "yes"}]}`, "pii must be a boolean"},
		{"null schema", `null`, "schema must not be null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(decode(t, tt.src))
			require.Error(t, err)
			assert.True(t, IsShapeError(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_ErrorPath(t *testing.T) {
	doc := decode(t, `{
		"type": "record",
		"name": "R",
		"fields": [
			{"name": "ok", "type": "int"},
			{"name": "bad", "type": ["null", {"type": "string", "logicalType": "nope"}]}
		]
	}`)

	_, err := Parse(doc)
	require.Error(t, err)

	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "fields[1].type[1].logicalType", se.Path)
}

func TestParse_WrappedType(t *testing.T) {
	s, err := Parse(decode(t, `{"type": {"type": "long", "logicalType": "timestamp-millis"}}`))
	require.NoError(t, err)
	assert.Equal(t, Logical{Underlying: Long, Kind: TimestampMillis}, s)
}

func TestParseRangeHint(t *testing.T) {
	hint, err := ParseRangeHint(decode(t, `{
		"string": {"min_length": 2, "format": "postal_code"},
		"double": {"min": -1.5, "max": 1.5},
		"array": {"max_length": 3},
		"date": {"min": "2000-01-01"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 2, hint.String.MinLength)
	assert.Equal(t, DefaultStringMaxLength, hint.String.MaxLength)
	assert.Equal(t, FormatPostalCode, hint.String.Format)
	assert.Equal(t, &FloatRange{Min: -1.5, Max: 1.5}, hint.Double)
	assert.Equal(t, &LengthRange{MinLength: 0, MaxLength: 3}, hint.Array)
	assert.Equal(t, "2000-01-01", hint.Date.Min)
	assert.Nil(t, hint.Int)
}

func TestParseRangeHint_Errors(t *testing.T) {
	_, err := ParseRangeHint(decode(t, `{"int": {"min": 5, "max": 1}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min must not exceed max")

	_, err = ParseRangeHint(decode(t, `{"string": {"format": "phone"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown string format "phone"`)

	_, err = ParseRangeHint(decode(t, `{"colour": {}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown range section")
}

func TestAsInt(t *testing.T) {
	n, ok := AsInt(float64(3))
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	_, ok = AsInt(3.5)
	assert.False(t, ok)

	n, ok = AsInt(json.Number("42"))
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = AsInt("42")
	assert.False(t, ok)
}
