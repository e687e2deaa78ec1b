package fst

import (
	"bytes"

	"github.com/latticekv/fst/automaton"
)

// Range expresses the optional lower/upper bounds a Stream can be
// constrained to. If both GE and GT are set, GT (the stricter bound)
// wins; likewise LE and LT.
type Range struct {
	GE, GT []byte
	LE, LT []byte
}

func (r Range) resolve() (lower []byte, lowerExclusive, hasLower bool, upper []byte, upperExclusive, hasUpper bool) {
	if r.GT != nil {
		lower, lowerExclusive, hasLower = r.GT, true, true
	} else if r.GE != nil {
		lower, lowerExclusive, hasLower = r.GE, false, true
	}
	if r.LT != nil {
		upper, upperExclusive, hasUpper = r.LT, true, true
	} else if r.LE != nil {
		upper, upperExclusive, hasUpper = r.LE, false, true
	}
	return
}

type streamOptions struct {
	auto           automaton.Automaton
	lower          []byte
	lowerExclusive bool
	hasLower       bool
	upper          []byte
	upperExclusive bool
	hasUpper       bool
}

type streamFrame struct {
	n         node
	transIdx  int
	outputAcc uint64
	autoState automaton.State
	finalDone bool
}

// Stream is a pull-driven, ordered traversal over a Reader, optionally
// bounded by a Range and filtered by an Automaton. The work done by one
// call to next is not bounded by one key's length: before it returns, a
// call walks past every key below the lower bound and every final state
// the automaton rejects (subtrees it reports CanMatch false for are
// skipped).
type Stream struct {
	r       *Reader
	opts    streamOptions
	keyBuf  []byte
	stack   []streamFrame
	started bool
	done    bool
	err     error
}

func newStream(r *Reader, opts streamOptions) *Stream {
	if opts.auto == nil {
		opts.auto = automaton.Always{}
	}
	return &Stream{r: r, opts: opts}
}

func (s *Stream) init() error {
	root, err := s.r.rootNode()
	if err != nil {
		return err
	}
	s.stack = []streamFrame{{n: root, autoState: s.opts.auto.Start()}}
	return nil
}

// lowerOK reports whether key satisfies the stream's lower bound. This
// is a yield-time filter over the ordinary traversal rather than a
// one-time seek that skips directly to the first candidate — see
// DESIGN.md for the tradeoff.
func (s *Stream) lowerOK(key []byte) bool {
	if !s.opts.hasLower {
		return true
	}
	c := bytes.Compare(key, s.opts.lower)
	if s.opts.lowerExclusive {
		return c > 0
	}
	return c >= 0
}

// upperOK reports whether key (or any prefix sharing key as its prefix)
// can still satisfy the stream's upper bound. Once false for a prefix it
// is false for every extension of that prefix, which is what makes
// push-time pruning of the remaining subtree valid.
func (s *Stream) upperOK(key []byte) bool {
	if !s.opts.hasUpper {
		return true
	}
	c := bytes.Compare(key, s.opts.upper)
	if s.opts.upperExclusive {
		return c < 0
	}
	return c <= 0
}

// next returns the next (key, value, ok) triple in ascending order, or
// ok=false once the stream is exhausted. value is meaningless (0) for
// set streams.
func (s *Stream) next() ([]byte, uint64, bool, error) {
	if s.err != nil {
		return nil, 0, false, s.err
	}
	if s.done {
		return nil, 0, false, nil
	}
	if !s.started {
		s.started = true
		if err := s.init(); err != nil {
			s.err = err
			return nil, 0, false, err
		}
	}

	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]

		if !top.finalDone {
			top.finalDone = true
			if top.n.Final && s.opts.auto.IsMatch(top.autoState) && s.lowerOK(s.keyBuf) && s.upperOK(s.keyBuf) {
				value := top.outputAcc + top.n.FinalOutput
				key := append([]byte(nil), s.keyBuf...)
				return key, value, true, nil
			}
		}

		if top.transIdx >= len(top.n.Transitions) {
			s.stack = s.stack[:len(s.stack)-1]
			if len(s.stack) > 0 {
				s.keyBuf = s.keyBuf[:len(s.keyBuf)-1]
			}
			continue
		}

		t := top.n.Transitions[top.transIdx]
		top.transIdx++

		if !s.upperOK(append(append([]byte(nil), s.keyBuf...), t.Byte)) {
			continue
		}
		nextAuto := s.opts.auto.Step(top.autoState, t.Byte)
		if !s.opts.auto.CanMatch(nextAuto) {
			continue
		}
		child, err := s.r.decode(t.Target)
		if err != nil {
			s.err = err
			return nil, 0, false, err
		}
		outputAcc := top.outputAcc + t.OutputDelta
		s.keyBuf = append(s.keyBuf, t.Byte)
		s.stack = append(s.stack, streamFrame{n: child, outputAcc: outputAcc, autoState: nextAuto})
	}

	s.done = true
	return nil, 0, false, nil
}

// Next advances the stream, returning the next key and (for map streams)
// value in ascending order.
func (s *Stream) Next() (key []byte, value uint64, ok bool, err error) {
	return s.next()
}

// CollectKeys eagerly drains the stream into a slice of keys.
func (s *Stream) CollectKeys() ([][]byte, error) {
	var out [][]byte
	for {
		k, _, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, k)
	}
}

// KV is one key/value pair yielded by a map stream.
type KV struct {
	Key   []byte
	Value uint64
}

// CollectItems eagerly drains a map stream into a slice of KV pairs.
func (s *Stream) CollectItems() ([]KV, error) {
	var out []KV
	for {
		k, v, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, KV{Key: k, Value: v})
	}
}
