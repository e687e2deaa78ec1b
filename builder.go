package fst

import (
	"bytes"

	"github.com/latticekv/fst/fsterr"
	"github.com/latticekv/fst/internal/bytesearch"
)

// pendingTransition is an unfinished state's outgoing edge. Target is
// unset (zero) until the child it points to has been compiled.
type pendingTransition struct {
	Byte        byte
	OutputDelta uint64
	Target      uint64
	hasTarget   bool
}

// frame is one unfinished-suffix-stack entry: the in-progress state at a
// given depth of the key currently being inserted.
type frame struct {
	transitions []pendingTransition
	final       bool
	finalOutput uint64
}

// Builder incrementally compiles a sorted key (or key/value) stream into
// an FST image. A Builder is single-owner: sharing one across goroutines
// is undefined, matching the contract documented for nfa.Builder in
// coregx-coregex — neither builder adds locking where the caller already
// owns exclusive access.
type Builder struct {
	cfg      BuilderConfig
	isMap    bool
	sink     Sink
	body     bytes.Buffer
	reg      *register
	stack    []*frame
	prevKey  []byte
	hasPrev  bool
	count    uint64
	done     bool
	poisoned bool
}

// NewSetBuilder creates a builder that accumulates a set of keys.
func NewSetBuilder(sink Sink) *Builder {
	return newBuilder(sink, false, DefaultBuilderConfig())
}

// NewMapBuilder creates a builder that accumulates key/value pairs.
func NewMapBuilder(sink Sink) *Builder {
	return newBuilder(sink, true, DefaultBuilderConfig())
}

// NewSetBuilderWithConfig is NewSetBuilder with explicit tuning.
func NewSetBuilderWithConfig(sink Sink, cfg BuilderConfig) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newBuilder(sink, false, cfg), nil
}

// NewMapBuilderWithConfig is NewMapBuilder with explicit tuning.
func NewMapBuilderWithConfig(sink Sink, cfg BuilderConfig) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newBuilder(sink, true, cfg), nil
}

func newBuilder(sink Sink, isMap bool, cfg BuilderConfig) *Builder {
	return &Builder{
		cfg:   cfg,
		isMap: isMap,
		sink:  sink,
		reg:   newRegister(cfg.RegisterCapacityHint),
		stack: []*frame{{}},
	}
}

// Insert adds a set key. It is an error to call Insert on a map builder;
// use InsertValue.
func (b *Builder) Insert(key []byte) error {
	if b.isMap {
		return &fsterr.UsageError{Op: "Builder.Insert", Detail: "builder is a map builder, use InsertValue"}
	}
	return b.insert(key, 0)
}

// InsertValue adds a key/value pair. It is an error to call InsertValue
// on a set builder; use Insert.
func (b *Builder) InsertValue(key []byte, value uint64) error {
	if !b.isMap {
		return &fsterr.UsageError{Op: "Builder.InsertValue", Detail: "builder is a set builder, use Insert"}
	}
	return b.insert(key, value)
}

func (b *Builder) insert(key []byte, value uint64) error {
	if b.done {
		return &fsterr.UsageError{Op: "Builder.Insert", Detail: "builder is already finished"}
	}
	if b.poisoned {
		return &fsterr.UsageError{Op: "Builder.Insert", Detail: "builder is poisoned by a previous error"}
	}
	if b.hasPrev && bytes.Compare(key, b.prevKey) <= 0 {
		b.poisoned = true
		return &fsterr.OrderError{Prev: append([]byte(nil), b.prevKey...), Got: append([]byte(nil), key...)}
	}

	p := bytesearch.CommonPrefixLen(b.prevKey, key)

	// Step 2: compile every unfinished state deeper than the shared
	// prefix; it can no longer receive new transitions.
	if err := b.compileAbove(p); err != nil {
		b.poisoned = true
		return err
	}

	// Output pushing happens over the p frames that remain shared with
	// the previous key, before the new branch is grown.
	if b.isMap {
		value = b.pushOutput(p, value)
	}

	// Step 3: extend the stack with one fresh frame per new byte,
	// linking each to its parent with a pending transition. The first
	// new transition carries whatever of value survived pushing; every
	// later one on this branch carries zero.
	for i := p; i < len(key); i++ {
		parent := b.stack[len(b.stack)-1]
		delta := uint64(0)
		if i == p {
			delta = value
		}
		parent.transitions = append(parent.transitions, pendingTransition{Byte: key[i], OutputDelta: delta})
		b.stack = append(b.stack, &frame{})
	}

	// Step 4: the deepest frame accepts this key. Only a key with no new
	// bytes (the empty key, inserted first) grows no transition to carry
	// its value, so the value becomes that frame's final output.
	leaf := b.stack[len(b.stack)-1]
	leaf.final = true
	if b.isMap {
		leaf.finalOutput = 0
		if p == len(key) {
			leaf.finalOutput = value
		}
	}

	b.prevKey = append(b.prevKey[:0], key...)
	b.hasPrev = true
	b.count++
	return nil
}

// compileAbove compiles and pops every frame deeper than depth p,
// attaching each compiled offset as the target of its parent's most
// recent pending transition.
func (b *Builder) compileAbove(p int) error {
	for len(b.stack) > p+1 {
		child := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		offset, err := b.compile(child)
		if err != nil {
			return err
		}
		parent := b.stack[len(b.stack)-1]
		last := &parent.transitions[len(parent.transitions)-1]
		last.Target = offset
		last.hasTarget = true
	}
	return nil
}

// pushOutput performs the map output-pushing rewrite over the p frames
// shared with the previous key, extracting the common minimum
// output-delta toward the root, and returns the residual value to
// attach to the new branch.
func (b *Builder) pushOutput(p int, value uint64) uint64 {
	for i := 0; i < p; i++ {
		fr := b.stack[i]
		last := &fr.transitions[len(fr.transitions)-1]
		c := last.OutputDelta
		if value < c {
			c = value
		}
		extra := last.OutputDelta - c
		last.OutputDelta = c
		if extra > 0 {
			// extra was already accounted for along every path through
			// the target of this transition; it must be re-added there,
			// not at fr itself, to keep every root-to-leaf sum unchanged.
			target := b.stack[i+1]
			for j := range target.transitions {
				target.transitions[j].OutputDelta += extra
			}
			if target.final {
				target.finalOutput += extra
			}
		}
		value -= c
	}
	return value
}

// compile serializes fr to the body buffer, deduplicating via the
// register, and returns its absolute offset.
func (b *Builder) compile(fr *frame) (uint64, error) {
	n := node{Final: fr.final, FinalOutput: fr.finalOutput}
	if len(fr.transitions) > 0 {
		n.Transitions = make([]transition, len(fr.transitions))
		for i, t := range fr.transitions {
			if !t.hasTarget {
				return 0, &fsterr.FormatError{Reason: "internal: compiling frame with unresolved transition target"}
			}
			n.Transitions[i] = transition{Byte: t.Byte, OutputDelta: t.OutputDelta, Target: t.Target}
		}
	}

	if existing, ok := b.reg.lookup(n); ok {
		return existing + headerSize, nil
	}

	bodyOffset := uint64(b.body.Len())
	selfOffset := bodyOffset + headerSize
	encoded := encodeNode(nil, n, selfOffset, b.isMap)

	b.body.Write(encoded)
	b.reg.insert(n, bodyOffset)
	return selfOffset, nil
}

// Len returns the number of keys inserted so far.
func (b *Builder) Len() int { return int(b.count) }

// Finish compiles every remaining unfinished state, writes the trailer,
// and hands the image to the sink. The Builder must not be used
// afterward.
func (b *Builder) Finish() ([]byte, error) {
	if b.done {
		return nil, &fsterr.UsageError{Op: "Builder.Finish", Detail: "builder is already finished"}
	}
	if b.poisoned {
		return nil, &fsterr.UsageError{Op: "Builder.Finish", Detail: "builder is poisoned by a previous error"}
	}
	b.done = true

	if err := b.compileAbove(0); err != nil {
		return nil, err
	}
	root := b.stack[0]
	rootOffset, err := b.compile(root)
	if err != nil {
		return nil, err
	}

	kind := byte(kindSet)
	if b.isMap {
		kind = kindMap
	}
	if _, err := b.sink.Write(encodeHeader(header{kind: kind, keyCount: b.count})); err != nil {
		return nil, err
	}
	if _, err := b.sink.Write(b.body.Bytes()); err != nil {
		return nil, err
	}
	if _, err := b.sink.Write(encodeTrailer(trailer{rootOffset: rootOffset})); err != nil {
		return nil, err
	}
	return b.sink.Finish()
}
