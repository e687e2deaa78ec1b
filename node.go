package fst

import (
	"encoding/binary"

	"github.com/latticekv/fst/fsterr"
	"github.com/latticekv/fst/internal/conv"
)

// Node packing. The control byte's low bit is the final flag; the next two
// bits select one of three transition-count shapes. Any encoding that
// preserves the logical (final, finalOutput, transitions) view below is
// legal — node packing is never exposed through the reader/builder API.
const (
	nodeFinalBit   = 1 << 0
	nodeKindMask   = 0b110
	nodeKindLeaf   = 0 << 1 // zero transitions
	nodeKindChain  = 1 << 1 // exactly one transition
	nodeKindBranch = 2 << 1 // two or more transitions, count follows
)

// transition is the logical view of one outgoing edge: the input byte,
// its output-delta (zero and unused for sets), and the absolute byte
// offset of its target state.
type transition struct {
	Byte        byte
	OutputDelta uint64
	Target      uint64
}

// node is the logical view of a decoded state, independent of which
// on-disk packing produced it.
type node struct {
	Final       bool
	FinalOutput uint64
	Transitions []transition
}

// encodeNode appends the on-disk encoding of n to buf, choosing the
// tightest packing for its transition count. selfOffset is the absolute
// offset at which this node's encoding will begin (needed to turn
// absolute target offsets into backward deltas).
func encodeNode(buf []byte, n node, selfOffset uint64, isMap bool) []byte {
	control := byte(0)
	if n.Final {
		control |= nodeFinalBit
	}
	switch len(n.Transitions) {
	case 0:
		control |= nodeKindLeaf
	case 1:
		control |= nodeKindChain
	default:
		control |= nodeKindBranch
	}
	buf = append(buf, control)

	if len(n.Transitions) >= 2 {
		buf = appendUvarint(buf, uint64(len(n.Transitions)))
	}
	for _, t := range n.Transitions {
		buf = append(buf, t.Byte)
		if isMap {
			buf = appendUvarint(buf, t.OutputDelta)
		}
		if t.Target > selfOffset {
			panic("fst: target offset must precede referencing node")
		}
		buf = appendUvarint(buf, selfOffset-t.Target)
	}
	if n.Final && isMap {
		buf = appendUvarint(buf, n.FinalOutput)
	}
	return buf
}

// decodeNode parses the node starting at offset within data.
func decodeNode(data []byte, offset uint64, isMap bool) (node, error) {
	if offset >= uint64(len(data)) {
		return node{}, &fsterr.FormatError{Reason: "node offset out of range"}
	}
	r := byteReader{data: data, pos: offset}
	control, err := r.readByte()
	if err != nil {
		return node{}, err
	}
	n := node{Final: control&nodeFinalBit != 0}

	var count uint64
	switch control & nodeKindMask {
	case nodeKindLeaf:
		count = 0
	case nodeKindChain:
		count = 1
	case nodeKindBranch:
		count, err = r.readUvarint()
		if err != nil {
			return node{}, err
		}
		if count < 2 {
			return node{}, &fsterr.FormatError{Reason: "branch node with fewer than 2 transitions"}
		}
	default:
		return node{}, &fsterr.FormatError{Reason: "unknown node kind"}
	}

	if count > 0 {
		n.Transitions = make([]transition, 0, count)
	}
	for i := uint64(0); i < count; i++ {
		b, err := r.readByte()
		if err != nil {
			return node{}, err
		}
		var delta uint64
		if isMap {
			delta, err = r.readUvarint()
			if err != nil {
				return node{}, err
			}
		}
		back, err := r.readUvarint()
		if err != nil {
			return node{}, err
		}
		if back > offset {
			return node{}, &fsterr.FormatError{Reason: "transition target underflows image start"}
		}
		n.Transitions = append(n.Transitions, transition{
			Byte:        b,
			OutputDelta: delta,
			Target:      offset - back,
		})
	}

	if n.Final && isMap {
		fo, err := r.readUvarint()
		if err != nil {
			return node{}, err
		}
		n.FinalOutput = fo
	}
	return n, nil
}

// findTransition does a binary search for byte b among n.Transitions,
// which are always stored in ascending byte order (the builder only ever
// appends a new sibling transition with a strictly greater byte than its
// predecessors, since keys arrive in ascending order).
func findTransition(n node, b byte) (transition, bool) {
	lo, hi := 0, len(n.Transitions)
	for lo < hi {
		mid := (lo + hi) / 2
		if n.Transitions[mid].Byte < b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(n.Transitions) && n.Transitions[lo].Byte == b {
		return n.Transitions[lo], true
	}
	return transition{}, false
}

func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

// byteReader is a tiny cursor over a byte slice used for sequential node
// decoding; conv.* guards every width-narrowing conversion it performs.
type byteReader struct {
	data []byte
	pos  uint64
}

func (r *byteReader) readByte() (byte, error) {
	if r.pos >= uint64(len(r.data)) {
		return 0, &fsterr.FormatError{Reason: "unexpected end of node data"}
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readUvarint() (uint64, error) {
	if r.pos >= uint64(len(r.data)) {
		return 0, &fsterr.FormatError{Reason: "unexpected end of node data"}
	}
	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, &fsterr.FormatError{Reason: "malformed varint"}
	}
	r.pos += conv.IntToUint64(n)
	return v, nil
}
