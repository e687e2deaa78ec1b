// Package automaton provides the recognizer interface that drives the FST
// stream engine's traversal, plus a set of built-in automata and
// combinators for composing them.
//
// An Automaton's states are plain values, not graph nodes: Start and Step
// never return a shared mutable handle, so automata can be cloned and
// composed freely without cyclic ownership graphs (mirroring how
// coregx/coregex's NFA states are addressed by a small integer ID rather
// than a pointer graph).
package automaton

// State is an opaque automaton state value produced by Start or Step.
// Callers never construct one directly.
type State any

// Automaton is an abstract recognizer over byte sequences.
type Automaton interface {
	// Start returns the initial state.
	Start() State

	// Step advances state by consuming one byte, returning the next
	// state.
	Step(s State, b byte) State

	// IsMatch reports whether s is an accepting state.
	IsMatch(s State) bool

	// CanMatch reports whether any extension from s could still reach
	// an accepting state. A conservative false lets the stream engine
	// prune an entire subtree; true never does (it may be pessimistic).
	CanMatch(s State) bool
}
