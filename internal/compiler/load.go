package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// LoadFile reads a JSON schema document from disk.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return LoadDocument(path, data)
}

// LoadDocument decodes a JSON schema document into the generic shape
// schema.Parse expects. Syntax errors carry the file position.
//
// Integers decode as int and other numbers as float64.
func LoadDocument(filename string, data []byte) (any, error) {
	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return nil, formatCUEError(err)
	}

	ctx := cuecontext.New()
	v := ctx.BuildExpr(expr)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	var doc any
	if err := v.Decode(&doc); err != nil {
		return nil, formatCUEError(err)
	}
	return doc, nil
}
