// Package wire moves intermediate values to and from the Avro binary
// encoding using hamba/avro.
//
// The intermediate form already carries the underlying primitive of every
// logical type (days as int, decimals as two's complement bytes), so
// logical annotations are dropped from the schema before it is handed to
// the binary codec.
//
// hamba picks a union branch from the Go type of the value, so a union
// member is matched by its primitive name. Unions of null and primitives
// round trip as plain values. A record or enum member of a union is
// encoded and decoded by hamba as a map keyed by the member's full name,
// which is not the intermediate shape; such unions are not supported.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/hamba/avro/v2"
)

// Encoder encodes the intermediate map of the named record.
type Encoder func(fqn string, m map[string]any) ([]byte, error)

// Decoder decodes Avro binary into the intermediate map of the named record.
type Decoder func(fqn string, b []byte) (map[string]any, error)

// NewEncoder parses schemaJSON, a standalone schema document or a list of
// them, and returns an encoder for the named types it defines.
func NewEncoder(schemaJSON []byte) (Encoder, error) {
	cache, err := parse(schemaJSON)
	if err != nil {
		return nil, err
	}
	return func(fqn string, m map[string]any) ([]byte, error) {
		s, err := lookup(cache, fqn)
		if err != nil {
			return nil, err
		}
		b, err := avro.Marshal(s, m)
		if err != nil {
			return nil, fmt.Errorf("wire: encode %s: %w", fqn, err)
		}
		return b, nil
	}, nil
}

// NewDecoder parses schemaJSON like NewEncoder and returns the matching
// decoder.
func NewDecoder(schemaJSON []byte) (Decoder, error) {
	cache, err := parse(schemaJSON)
	if err != nil {
		return nil, err
	}
	return func(fqn string, b []byte) (map[string]any, error) {
		s, err := lookup(cache, fqn)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := avro.Unmarshal(s, b, &m); err != nil {
			return nil, fmt.Errorf("wire: decode %s: %w", fqn, err)
		}
		return m, nil
	}, nil
}

// Check reports whether the Avro parser accepts schemaJSON as written,
// logical annotations included.
func Check(schemaJSON []byte) error {
	if _, err := avro.ParseWithCache(string(schemaJSON), "", &avro.SchemaCache{}); err != nil {
		return fmt.Errorf("wire: schema rejected: %w", err)
	}
	return nil
}

func parse(schemaJSON []byte) (*avro.SchemaCache, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("wire: invalid schema JSON: %w", err)
	}
	plain, err := json.Marshal(stripLogical(doc))
	if err != nil {
		return nil, err
	}

	cache := &avro.SchemaCache{}
	if _, err := avro.ParseWithCache(string(plain), "", cache); err != nil {
		return nil, fmt.Errorf("wire: schema rejected: %w", err)
	}
	return cache, nil
}

func lookup(cache *avro.SchemaCache, fqn string) (avro.Schema, error) {
	s := cache.Get(fqn)
	if s == nil {
		return nil, fmt.Errorf("wire: no schema named %q", fqn)
	}
	return s, nil
}

// logicalAttrs are the attributes that only mean something next to a
// logicalType.
var logicalAttrs = []string{"logicalType", "precision", "scale"}

// stripLogical removes logical annotations from a decoded schema document.
func stripLogical(doc any) any {
	switch v := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, x := range v {
			out[k] = stripLogical(x)
		}
		if _, ok := out["logicalType"]; ok {
			for _, k := range logicalAttrs {
				delete(out, k)
			}
			// {"type": "int"} on its own is the primitive itself
			if t, ok := out["type"].(string); ok && len(out) == 1 {
				return t
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = stripLogical(x)
		}
		return out
	default:
		return doc
	}
}
