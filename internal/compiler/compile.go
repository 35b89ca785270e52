// Package compiler turns parsed schema documents into a normalized, flat
// table of named definitions and checks it: references resolve, names and
// symbols are valid, and the dependency graph orders cleanly.
package compiler

import (
	"fmt"

	"github.com/primait/avrogen/internal/schema"
)

// Result is the outcome of compiling one schema with its dependencies.
type Result struct {
	// Root is the normalized root schema: a Reference when the document
	// defines a record or enum.
	Root schema.Schema

	// Table holds every definition from the root and its dependencies.
	Table schema.GlobalTable

	// Order lists Table's FQNs, dependencies first.
	Order []string

	// Defined lists the FQNs defined by the root document itself.
	Defined []string
}

// Compile parses and normalizes the dependency documents and then the root
// document into one table, validates it and orders it.
func Compile(root any, deps []any, opts NormalizeOptions) (*Result, error) {
	var table schema.GlobalTable

	for i, doc := range deps {
		s, err := schema.Parse(doc)
		if err != nil {
			return nil, fmt.Errorf("dependency %d: %w", i, err)
		}
		_, table, err = NormalizeChecked(s, table, "", opts)
		if err != nil {
			return nil, fmt.Errorf("dependency %d: %w", i, err)
		}
	}

	s, err := schema.Parse(root)
	if err != nil {
		return nil, err
	}
	before := table
	normalized, table, err := NormalizeChecked(s, table, "", opts)
	if err != nil {
		return nil, err
	}

	if errs := Validate(table); len(errs) > 0 {
		return nil, errs
	}
	if err := CheckReferences(normalized, table); err != nil {
		return nil, err
	}
	order, err := Order(table)
	if err != nil {
		return nil, err
	}

	var defined []string
	for _, name := range table.Names() {
		if _, ok := before.Lookup(name); !ok {
			defined = append(defined, name)
		}
	}

	return &Result{
		Root:    normalized,
		Table:   table,
		Order:   order,
		Defined: defined,
	}, nil
}
