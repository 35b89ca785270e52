// Package codec builds, for every record and enum of a normalized schema
// table, the logic that converts between native Go values and the
// intermediate map representation a wire codec consumes. It also builds
// PII redaction and deterministic random instance generation for the same
// types.
//
// Native values:
//
//	null            nil
//	boolean         bool
//	int, long       int64
//	float, double   float64
//	bytes           []byte
//	string          string
//	record          *Record
//	enum            Symbol
//	array           []any
//	map             map[string]any
//	logical types   see package logical
//
// A Generator is immutable once built and safe for concurrent use.
package codec

// Record is the native value of an Avro record. Name is the record's FQN.
type Record struct {
	Name   string
	Fields map[string]any
}

// Symbol is the native value of an Avro enum.
type Symbol string
