package random

import (
	"math"
	"math/big"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// Generator produces a value of type T and the advanced state.
type Generator[T any] func(State) (State, T)

// Constant always yields v without consuming randomness.
func Constant[T any](v T) Generator[T] {
	return func(s State) (State, T) { return s, v }
}

// Map transforms the output of g.
func Map[A, B any](g Generator[A], f func(A) B) Generator[B] {
	return func(s State) (State, B) {
		s, a := g(s)
		return s, f(a)
	}
}

// Bind feeds the output of g into the generator chosen by f.
func Bind[A, B any](g Generator[A], f func(A) Generator[B]) Generator[B] {
	return func(s State) (State, B) {
		s, a := g(s)
		return f(a)(s)
	}
}

// Int yields a uniform integer in [min, max]. An empty range yields min.
func Int(min, max int64) Generator[int64] {
	if max <= min {
		return Constant(min)
	}
	span := uint64(max-min) + 1
	return func(s State) (State, int64) {
		return draw(s, func(r *rand.Rand) int64 {
			if span == 0 {
				// full 64-bit range
				return int64(r.Uint64())
			}
			return min + int64(r.Uint64N(span))
		})
	}
}

// Float yields a uniform float in [min, max).
func Float(min, max float64) Generator[float64] {
	if max <= min {
		return Constant(min)
	}
	return func(s State) (State, float64) {
		return draw(s, func(r *rand.Rand) float64 {
			v := min + r.Float64()*(max-min)
			if math.IsInf(v, 0) {
				return min
			}
			return v
		})
	}
}

// Decimal yields a uniform decimal with the given scale in [min, max].
// Bounds are rounded inwards to the scale.
func Decimal(min, max decimal.Decimal, scale int32) Generator[decimal.Decimal] {
	lo := min.Shift(scale).Ceil().BigInt()
	hi := max.Shift(scale).Floor().BigInt()
	if hi.Cmp(lo) <= 0 {
		return Constant(decimal.NewFromBigInt(lo, -scale))
	}
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, big.NewInt(1))
	return func(s State) (State, decimal.Decimal) {
		return draw(s, func(r *rand.Rand) decimal.Decimal {
			n := bigN(r, span)
			return decimal.NewFromBigInt(n.Add(n, lo), -scale)
		})
	}
}

// bigN yields a value in [0, n). The modulo bias is negligible for the
// widths decimals use.
func bigN(r *rand.Rand, n *big.Int) *big.Int {
	if n.IsUint64() {
		return new(big.Int).SetUint64(r.Uint64N(n.Uint64()))
	}
	words := n.BitLen()/64 + 1
	acc := new(big.Int)
	for range words {
		acc.Lsh(acc, 64)
		acc.Or(acc, new(big.Int).SetUint64(r.Uint64()))
	}
	return acc.Mod(acc, n)
}

// Bool yields true or false with equal probability.
func Bool() Generator[bool] {
	return func(s State) (State, bool) {
		return draw(s, func(r *rand.Rand) bool { return r.Uint64()&1 == 1 })
	}
}

// List yields between minLen and maxLen values drawn from g.
func List[T any](minLen, maxLen int, g Generator[T]) Generator[[]T] {
	length := Int(int64(minLen), int64(maxLen))
	return func(s State) (State, []T) {
		s, n := length(s)
		out := make([]T, 0, n)
		for range n {
			var v T
			s, v = g(s)
			out = append(out, v)
		}
		return s, out
	}
}

// MapOf yields a map with between minLen and maxLen entries. Colliding keys
// are redrawn a bounded number of times, so a narrow key space may yield
// fewer entries than requested.
func MapOf[T any](minLen, maxLen int, key Generator[string], value Generator[T]) Generator[map[string]T] {
	length := Int(int64(minLen), int64(maxLen))
	return func(s State) (State, map[string]T) {
		s, n := length(s)
		out := make(map[string]T, n)
		for attempts := 0; len(out) < int(n) && attempts < int(n)*8; attempts++ {
			var k string
			s, k = key(s)
			if _, dup := out[k]; dup {
				continue
			}
			var v T
			s, v = value(s)
			out[k] = v
		}
		return s, out
	}
}

// Element picks one of values uniformly. It panics if values is empty.
func Element[T any](values ...T) Generator[T] {
	if len(values) == 0 {
		panic("random: Element with no values")
	}
	index := Int(0, int64(len(values)-1))
	return func(s State) (State, T) {
		s, i := index(s)
		return s, values[i]
	}
}

// OneOf picks one of gens uniformly and runs it. It panics if gens is empty.
func OneOf[T any](gens ...Generator[T]) Generator[T] {
	return Bind(Element(gens...), func(g Generator[T]) Generator[T] { return g })
}

// Sequence runs gens in order.
func Sequence[T any](gens ...Generator[T]) Generator[[]T] {
	return func(s State) (State, []T) {
		out := make([]T, len(gens))
		for i, g := range gens {
			s, out[i] = g(s)
		}
		return s, out
	}
}

// Field is one named component of a Record generator.
type Field struct {
	Name string
	Gen  Generator[any]
}

// Record runs the field generators in declared order, threading the state
// through each.
func Record(fields ...Field) Generator[map[string]any] {
	return func(s State) (State, map[string]any) {
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			var v any
			s, v = f.Gen(s)
			out[f.Name] = v
		}
		return s, out
	}
}

// Sample runs g n times from s.
func Sample[T any](g Generator[T], s State, n int) (State, []T) {
	out := make([]T, 0, n)
	for range n {
		var v T
		s, v = g(s)
		out = append(out, v)
	}
	return s, out
}

// Any erases the type of g.
func Any[T any](g Generator[T]) Generator[any] {
	return Map(g, func(v T) any { return v })
}
