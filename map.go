package fst

import (
	"fmt"

	"github.com/latticekv/fst/automaton"
	"github.com/latticekv/fst/fsterr"
)

// Map is an immutable, ordered map from byte-string keys to uint64 values
// backed by an FST image. A Map is safe for concurrent use by multiple
// goroutines.
type Map struct {
	r *Reader
}

// OpenMap opens src as a Map. It returns a UsageError if src holds a set
// image rather than a map image.
func OpenMap(src Source) (*Map, error) {
	r, err := open(src)
	if err != nil {
		return nil, err
	}
	if err := requireKind(r, true, "OpenMap"); err != nil {
		return nil, err
	}
	return &Map{r: r}, nil
}

// Len returns the number of entries in the map.
func (m *Map) Len() int { return m.r.Len() }

// Get returns the value associated with key, or a KeyMissing error
// (reachable via errors.Is(err, fsterr.ErrKeyMissing)) if key is absent.
func (m *Map) Get(key []byte) (uint64, error) {
	v, ok, err := m.r.get(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("fst: get %q: %w", key, fsterr.ErrKeyMissing)
	}
	return v, nil
}

// TryGet returns the value associated with key and whether it was
// present, the comma-ok counterpart to Get.
func (m *Map) TryGet(key []byte) (uint64, bool, error) { return m.r.get(key) }

// GetOrDefault returns the value associated with key, or def if key is
// absent.
func (m *Map) GetOrDefault(key []byte, def uint64) (uint64, error) {
	v, ok, err := m.TryGet(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Stream returns an unbounded, unfiltered ascending stream over every
// key/value pair.
func (m *Map) Stream() *Stream { return newStream(m.r, streamOptions{}) }

// Range returns a stream bounded by rng.
func (m *Map) Range(rng Range) *Stream {
	lower, lowerEx, hasLower, upper, upperEx, hasUpper := rng.resolve()
	return newStream(m.r, streamOptions{
		lower: lower, lowerExclusive: lowerEx, hasLower: hasLower,
		upper: upper, upperExclusive: upperEx, hasUpper: hasUpper,
	})
}

// Search returns a stream filtered by a.
func (m *Map) Search(a automaton.Automaton) *Stream {
	return newStream(m.r, streamOptions{auto: a})
}

// PrefixedBy returns a stream over every entry whose key shares prefix as
// a leading substring.
func (m *Map) PrefixedBy(prefix []byte) *Stream {
	return m.Search(automaton.StartsWith{Inner: automaton.NewStr(prefix)})
}

// ContainingSubsequence returns a stream over every entry whose key
// contains sub as a (not necessarily contiguous) subsequence.
func (m *Map) ContainingSubsequence(sub []byte) *Stream {
	return m.Search(automaton.NewSubsequence(sub))
}

// Keys returns the sorted keys of the map.
func (m *Map) Keys() ([][]byte, error) { return m.Stream().CollectKeys() }

// Items returns the sorted key/value pairs of the map.
func (m *Map) Items() ([]KV, error) { return m.Stream().CollectItems() }

// Equal reports whether m and other hold the same key/value pairs.
func (m *Map) Equal(other *Map) (bool, error) { return m.r.Equal(other.r) }

// String renders a short debug summary, not the full key list.
func (m *Map) String() string {
	return DebugString(m.r)
}

// MarshalBinary returns the underlying FST image, satisfying
// encoding.BinaryMarshaler.
func (m *Map) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), m.r.data...), nil
}

// UnmarshalBinary replaces m with the map image decoded from data,
// satisfying encoding.BinaryUnmarshaler. data is copied; m does not alias
// the caller's slice afterward.
func (m *Map) UnmarshalBinary(data []byte) error {
	r, err := open(FromBytes(append([]byte(nil), data...)))
	if err != nil {
		return err
	}
	if err := requireKind(r, true, "Map.UnmarshalBinary"); err != nil {
		return err
	}
	m.r = r
	return nil
}
