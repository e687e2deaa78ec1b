package fst

import (
	"bytes"

	"github.com/latticekv/fst/automaton"
)

// Set is an immutable, ordered set of byte-string keys backed by an FST
// image. A Set is safe for concurrent use by multiple goroutines.
type Set struct {
	r *Reader
}

// OpenSet opens src as a Set. It returns a UsageError if src holds a map
// image rather than a set image.
func OpenSet(src Source) (*Set, error) {
	r, err := open(src)
	if err != nil {
		return nil, err
	}
	if err := requireKind(r, false, "OpenSet"); err != nil {
		return nil, err
	}
	return &Set{r: r}, nil
}

// Len returns the number of keys in the set.
func (s *Set) Len() int { return s.r.Len() }

// Contains reports whether key is a member of the set.
func (s *Set) Contains(key []byte) (bool, error) { return s.r.contains(key) }

// Stream returns an unbounded, unfiltered ascending stream over every key.
func (s *Set) Stream() *Stream { return newStream(s.r, streamOptions{}) }

// Range returns a stream bounded by rng.
func (s *Set) Range(rng Range) *Stream {
	lower, lowerEx, hasLower, upper, upperEx, hasUpper := rng.resolve()
	return newStream(s.r, streamOptions{
		lower: lower, lowerExclusive: lowerEx, hasLower: hasLower,
		upper: upper, upperExclusive: upperEx, hasUpper: hasUpper,
	})
}

// Search returns a stream filtered by a.
func (s *Set) Search(a automaton.Automaton) *Stream {
	return newStream(s.r, streamOptions{auto: a})
}

// PrefixedBy returns a stream over every key sharing prefix as a leading
// substring.
func (s *Set) PrefixedBy(prefix []byte) *Stream {
	return s.Search(automaton.StartsWith{Inner: automaton.NewStr(prefix)})
}

// ContainingSubsequence returns a stream over every key containing sub as
// a (not necessarily contiguous) subsequence.
func (s *Set) ContainingSubsequence(sub []byte) *Stream {
	return s.Search(automaton.NewSubsequence(sub))
}

// Equal reports whether s and other contain the same keys.
func (s *Set) Equal(other *Set) (bool, error) { return s.r.Equal(other.r) }

// IsSubset reports whether every key of s is also a key of other. It
// co-traverses both Streams in lockstep rather than repeating a
// root-to-leaf Contains lookup per key.
func (s *Set) IsSubset(other *Set) (bool, error) {
	sa := s.Stream()
	sb := other.Stream()
	ka, _, oka, err := sa.Next()
	if err != nil {
		return false, err
	}
	kb, _, okb, err := sb.Next()
	if err != nil {
		return false, err
	}
	for oka {
		if !okb {
			return false, nil
		}
		switch bytes.Compare(ka, kb) {
		case 0:
			if ka, _, oka, err = sa.Next(); err != nil {
				return false, err
			}
			if kb, _, okb, err = sb.Next(); err != nil {
				return false, err
			}
		case -1:
			// ka has no match in other: not a subset.
			return false, nil
		default:
			if kb, _, okb, err = sb.Next(); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// IsSuperset reports whether every key of other is also a key of s.
func (s *Set) IsSuperset(other *Set) (bool, error) { return other.IsSubset(s) }

// IsProperSubset reports whether s is a subset of other and the two are
// not equal.
func (s *Set) IsProperSubset(other *Set) (bool, error) {
	if s.Len() >= other.Len() {
		return false, nil
	}
	return s.IsSubset(other)
}

// IsProperSuperset reports whether s is a superset of other and the two
// are not equal.
func (s *Set) IsProperSuperset(other *Set) (bool, error) {
	return other.IsProperSubset(s)
}

// IsDisjoint reports whether s and other share no keys. It co-traverses
// both Streams in lockstep rather than repeating a root-to-leaf Contains
// lookup per key.
func (s *Set) IsDisjoint(other *Set) (bool, error) {
	sa := s.Stream()
	sb := other.Stream()
	ka, _, oka, err := sa.Next()
	if err != nil {
		return false, err
	}
	kb, _, okb, err := sb.Next()
	if err != nil {
		return false, err
	}
	for oka && okb {
		switch bytes.Compare(ka, kb) {
		case 0:
			return false, nil
		case -1:
			if ka, _, oka, err = sa.Next(); err != nil {
				return false, err
			}
		default:
			if kb, _, okb, err = sb.Next(); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// String renders a short debug summary, not the full key list.
func (s *Set) String() string {
	return DebugString(s.r)
}

// MarshalBinary returns the underlying FST image, satisfying
// encoding.BinaryMarshaler.
func (s *Set) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), s.r.data...), nil
}

// UnmarshalBinary replaces s with the set image decoded from data,
// satisfying encoding.BinaryUnmarshaler. data is copied; s does not alias
// the caller's slice afterward.
func (s *Set) UnmarshalBinary(data []byte) error {
	r, err := open(FromBytes(append([]byte(nil), data...)))
	if err != nil {
		return err
	}
	if err := requireKind(r, false, "Set.UnmarshalBinary"); err != nil {
		return err
	}
	s.r = r
	return nil
}
