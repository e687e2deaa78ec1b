// Package setops builds unions, intersections, differences, and
// symmetric differences of existing Sets and Maps by streaming a k-way
// merge of their Streams straight into a new Builder. The merge heap is
// built on the standard library's container/heap; no third-party
// priority queue pulls its weight over a handful of ascending
// byte-slice streams.
package setops

import (
	"bytes"
	"container/heap"
)

// heapItem is one stream's current head, parked in the merge heap until
// it is consumed.
type heapItem struct {
	key   []byte
	value uint64
	src   int
}

type itemHeap []heapItem

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if c := bytes.Compare(h[i].key, h[j].key); c != 0 {
		return c < 0
	}
	return h[i].src < h[j].src
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(heapItem)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// streamer is the minimal surface merger needs from an *fst.Stream,
// declared as an interface so the merge engine below never has to import
// package fst
// (and so it can be unit-tested against fakes without building real
// images).
type streamer interface {
	Next() (key []byte, value uint64, ok bool, err error)
}

// merger drives len(streams) streamers in lockstep, grouping their heads
// by equal key.
type merger struct {
	streams []streamer
	h       itemHeap
}

func newMerger(streams []streamer) (*merger, error) {
	m := &merger{streams: streams}
	for i, st := range streams {
		k, v, ok, err := st.Next()
		if err != nil {
			return nil, err
		}
		if ok {
			m.h = append(m.h, heapItem{key: k, value: v, src: i})
		}
	}
	heap.Init(&m.h)
	return m, nil
}

// next pops every heap entry sharing the smallest key, refills each from
// its source stream, and returns the key alongside a presence/value
// vector indexed by input position. ok is false once every stream is
// exhausted.
func (m *merger) next() (key []byte, present []bool, values []uint64, ok bool, err error) {
	if m.h.Len() == 0 {
		return nil, nil, nil, false, nil
	}
	key = append([]byte(nil), m.h[0].key...)
	present = make([]bool, len(m.streams))
	values = make([]uint64, len(m.streams))
	for m.h.Len() > 0 && bytes.Equal(m.h[0].key, key) {
		it := heap.Pop(&m.h).(heapItem)
		present[it.src] = true
		values[it.src] = it.value
		nk, nv, nok, nerr := m.streams[it.src].Next()
		if nerr != nil {
			return nil, nil, nil, false, nerr
		}
		if nok {
			heap.Push(&m.h, heapItem{key: nk, value: nv, src: it.src})
		}
	}
	return key, present, values, true, nil
}

// predicate decides, given which of the input streams currently hold the
// running key, whether that key belongs in the output.
type predicate func(present []bool) bool

func unionPredicate(present []bool) bool {
	for _, p := range present {
		if p {
			return true
		}
	}
	return false
}

func intersectionPredicate(present []bool) bool {
	for _, p := range present {
		if !p {
			return false
		}
	}
	return true
}

// differencePredicate keeps keys present in the first input and absent
// from every other: the standard A \ (B ∪ C ∪ ...) generalization.
func differencePredicate(present []bool) bool {
	if !present[0] {
		return false
	}
	for _, p := range present[1:] {
		if p {
			return false
		}
	}
	return true
}

// symmetricDifferencePredicate keeps keys present in an odd number of
// inputs, the N-way generalization of pairwise XOR.
func symmetricDifferencePredicate(present []bool) bool {
	count := 0
	for _, p := range present {
		if p {
			count++
		}
	}
	return count%2 == 1
}
