// Package random provides deterministic pseudo-random value generators.
//
// A State is an immutable value. Every generator takes a State and returns
// the advanced State alongside its value, so a run is fully determined by
// its starting State and can be replayed from a captured one.
package random

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"
)

// seedMix decorrelates the two PCG words derived from a single seed.
const seedMix = 0x9e3779b97f4a7c15

// State is the generator state threaded through every Generator.
type State struct {
	pcg rand.PCG
}

// NewState returns the initial state for seed.
func NewState(seed uint64) State {
	return State{pcg: *rand.NewPCG(seed, seed^seedMix)}
}

// String exports the state so that a run can be reproduced with ParseState.
func (s State) String() string {
	b, err := s.pcg.MarshalBinary()
	if err != nil {
		// PCG marshalling cannot fail.
		panic(err)
	}
	return hex.EncodeToString(b)
}

// ParseState imports a state previously exported with String.
func ParseState(text string) (State, error) {
	b, err := hex.DecodeString(text)
	if err != nil {
		return State{}, fmt.Errorf("invalid random state %q: %w", text, err)
	}
	var s State
	if err := s.pcg.UnmarshalBinary(b); err != nil {
		return State{}, fmt.Errorf("invalid random state %q: %w", text, err)
	}
	return s, nil
}

// Split derives an independent child state, returning the advanced parent
// and the child.
func Split(s State) (State, State) {
	return draw(s, func(r *rand.Rand) State {
		return State{pcg: *rand.NewPCG(r.Uint64(), r.Uint64())}
	})
}

// draw runs f against a copy of the state and returns the advanced copy.
func draw[T any](s State, f func(r *rand.Rand) T) (State, T) {
	p := s.pcg
	v := f(rand.New(&p))
	return State{pcg: p}, v
}
