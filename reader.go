package fst

import (
	"github.com/latticekv/fst/fsterr"
)

// Reader parses an FST image and answers point queries against it. A
// Reader never mutates its source and is safe for concurrent use by
// multiple goroutines, the same guarantee coregx-coregex documents for
// its compiled meta.Engine.
type Reader struct {
	data  []byte
	kind  byte
	count uint64
	root  uint64
}

// open validates src as an FST image and returns a Reader over it. src
// must outlive the Reader and every Stream derived from it.
func open(src Source) (*Reader, error) {
	data := src.Bytes()
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	t, err := decodeTrailer(data)
	if err != nil {
		return nil, err
	}
	return &Reader{data: data, kind: h.kind, count: h.keyCount, root: t.rootOffset}, nil
}

// IsMap reports whether this image stores key/value pairs.
func (r *Reader) IsMap() bool { return r.kind == kindMap }

// Len returns the number of keys in the image.
func (r *Reader) Len() int { return int(r.count) }

func (r *Reader) decode(offset uint64) (node, error) {
	return decodeNode(r.data, offset, r.IsMap())
}

func (r *Reader) rootNode() (node, error) {
	return r.decode(r.root)
}

// get performs the point-lookup walk: consume key byte by byte,
// accumulating output-deltas, and report the accumulator plus final
// output if the terminal state is final.
func (r *Reader) get(key []byte) (uint64, bool, error) {
	n, err := r.rootNode()
	if err != nil {
		return 0, false, err
	}
	var acc uint64
	for _, b := range key {
		t, ok := findTransition(n, b)
		if !ok {
			return 0, false, nil
		}
		acc += t.OutputDelta
		n, err = r.decode(t.Target)
		if err != nil {
			return 0, false, err
		}
	}
	if !n.Final {
		return 0, false, nil
	}
	return acc + n.FinalOutput, true, nil
}

// contains reports whether key was built into the image. Behaves like
// get but ignores accumulated output, for use by set images.
func (r *Reader) contains(key []byte) (bool, error) {
	_, ok, err := r.get(key)
	return ok, err
}

// Equal reports whether r and other encode the same sequence of
// key/value pairs, via a co-traversal rather than a byte comparison, so
// two structurally different but semantically identical images compare
// equal.
func (r *Reader) Equal(other *Reader) (bool, error) {
	if r.count != other.count || r.kind != other.kind {
		return false, nil
	}
	sa := newStream(r, streamOptions{})
	sb := newStream(other, streamOptions{})
	for {
		ka, va, oka, err := sa.next()
		if err != nil {
			return false, err
		}
		kb, vb, okb, err := sb.next()
		if err != nil {
			return false, err
		}
		if oka != okb {
			return false, nil
		}
		if !oka {
			return true, nil
		}
		if string(ka) != string(kb) || va != vb {
			return false, nil
		}
	}
}

func requireKind(r *Reader, wantMap bool, op string) error {
	if r.IsMap() != wantMap {
		return &fsterr.UsageError{Op: op, Detail: "kind mismatch between set and map"}
	}
	return nil
}
