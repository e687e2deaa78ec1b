// Package fst implements finite-state-transducer-backed immutable sets
// and maps: byte-sorted keys (and, for maps, uint64 values) compiled into
// a minimized acyclic automaton that supports membership, point lookup,
// and ordered iteration — bounded, prefix, subsequence, or automaton
// driven — in space close to the information-theoretic minimum for the
// key set.
//
// A Builder consumes keys in strictly ascending order and streams a
// finished image to a Sink. A Reader (wrapped by Set or Map) opens that
// image from a Source without copying it, and a Stream walks it in
// ascending order. Package setops builds unions, intersections,
// differences, and symmetric differences of existing sets and maps by
// streaming k-way merges straight into a new Builder.
package fst
