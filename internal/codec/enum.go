package codec

import (
	"github.com/primait/avrogen/internal/random"
	"github.com/primait/avrogen/internal/schema"
)

// buildEnum compiles an enum. Decoding an unknown symbol yields the
// declared default when there is one.
func (g *Generator) buildEnum(def *schema.Enum) *node {
	fqn := def.FQN()
	return &node{
		encode: func(v any) (any, error) {
			sym, ok := v.(Symbol)
			if !ok {
				return nil, encodeErrorf("expected codec.Symbol for %s, got %T", fqn, v)
			}
			if !def.HasSymbol(string(sym)) {
				return nil, encodeErrorf("%q is not a symbol of %s", sym, fqn)
			}
			return string(sym), nil
		},
		decode: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, decodeErrorf("expected string for enum %s, got %T", fqn, v)
			}
			switch {
			case def.HasSymbol(s):
				return Symbol(s), nil
			case def.Default != "":
				return Symbol(def.Default), nil
			default:
				return nil, decodeErrorf("unknown symbol %q for enum %s", s, fqn)
			}
		},
		dropPII: identity,
		random: func(*schema.RangeHint, int) random.Generator[any] {
			pool := def.Symbols
			if len(def.PreferredSubset) > 0 {
				pool = def.PreferredSubset
			}
			return random.Map(random.Element(pool...), func(s string) any { return Symbol(s) })
		},
	}
}
