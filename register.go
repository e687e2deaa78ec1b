package fst

import (
	"bytes"
	"hash/fnv"
)

// fingerprint is a content hash of a compiled node's canonical encoding,
// used as the register's lookup key. Grounded on coregx-coregex's
// dfa/lazy.ComputeStateKey, which FNV-1a-hashes a canonicalized state
// description for the same incremental-minimization purpose.
type fingerprint uint64

func hashNode(canonical []byte) fingerprint {
	h := fnv.New64a()
	h.Write(canonical)
	return fingerprint(h.Sum64())
}

// canonicalNodeKey serializes n in a form that depends only on its
// logical contents — absolute transition targets, not the backward
// deltas encodeNode computes relative to a particular selfOffset. Two
// nodes compiled at different body positions but with identical
// contents must hash and compare equal, which a selfOffset-relative
// encoding (as written to the image) would not guarantee.
func canonicalNodeKey(n node) []byte {
	var buf []byte
	control := byte(0)
	if n.Final {
		control |= nodeFinalBit
	}
	buf = append(buf, control)
	buf = appendUvarint(buf, uint64(len(n.Transitions)))
	for _, t := range n.Transitions {
		buf = append(buf, t.Byte)
		buf = appendUvarint(buf, t.OutputDelta)
		buf = appendUvarint(buf, t.Target)
	}
	if n.Final {
		buf = appendUvarint(buf, n.FinalOutput)
	}
	return buf
}

// registerEntry pairs a previously compiled node's canonical key (kept
// so a fingerprint collision can be resolved by comparing actual
// contents instead of trusting the hash alone) with the body-relative
// offset its on-disk encoding was written at.
type registerEntry struct {
	canonical []byte
	offset    uint64
}

// register is the builder's hashed deduplication table: it maps a
// node's fingerprint to the one or more already-compiled nodes sharing
// that fingerprint (a slice rather than a single entry to survive hash
// collisions without corrupting the image).
type register struct {
	entries map[fingerprint][]registerEntry
}

func newRegister(capacityHint int) *register {
	return &register{entries: make(map[fingerprint][]registerEntry, capacityHint)}
}

// lookup returns the body-relative offset of a previously compiled node
// whose logical contents are identical to n, if one has been
// registered.
func (r *register) lookup(n node) (uint64, bool) {
	canonical := canonicalNodeKey(n)
	fp := hashNode(canonical)
	for _, e := range r.entries[fp] {
		if bytes.Equal(e.canonical, canonical) {
			return e.offset, true
		}
	}
	return 0, false
}

// insert registers a newly compiled node at the given body-relative
// offset.
func (r *register) insert(n node, offset uint64) {
	canonical := canonicalNodeKey(n)
	fp := hashNode(canonical)
	r.entries[fp] = append(r.entries[fp], registerEntry{canonical: canonical, offset: offset})
}
