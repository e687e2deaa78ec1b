package setops

import (
	"sort"

	"github.com/latticekv/fst"
	"github.com/latticekv/fst/fsterr"
)

// Strategy resolves the output value for a map key present in more than
// one input. Sets ignore Strategy entirely, since a set key carries no
// value to resolve.
type Strategy int

const (
	// First keeps the value from the first input holding the key.
	First Strategy = iota
	// Last keeps the value from the last input holding the key.
	Last
	// Min keeps the smallest value.
	Min
	// Max keeps the largest value.
	Max
	// Avg keeps the integer-truncated mean of every value.
	Avg
	// Median keeps the middle value of the sorted values, or the
	// truncated average of the two middle values when there is an even
	// count.
	Median
	// Mid keeps the sorted value at index count/2 (not the arithmetic
	// midrange of the smallest and largest value).
	Mid
)

func (s Strategy) resolve(vals []uint64) uint64 {
	switch s {
	case Last:
		return vals[len(vals)-1]
	case Min:
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case Max:
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case Avg:
		var sum uint64
		for _, v := range vals {
			sum += v
		}
		return sum / uint64(len(vals))
	case Median:
		sorted := append([]uint64(nil), vals...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2
	case Mid:
		sorted := append([]uint64(nil), vals...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		return sorted[len(sorted)/2]
	default: // First
		return vals[0]
	}
}

func collectValues(present []bool, values []uint64) []uint64 {
	out := make([]uint64, 0, len(values))
	for i, p := range present {
		if p {
			out = append(out, values[i])
		}
	}
	return out
}

func mergeSets(builder *fst.Builder, pred predicate, sets []*fst.Set) error {
	streams := make([]streamer, len(sets))
	for i, s := range sets {
		streams[i] = s.Stream()
	}
	m, err := newMerger(streams)
	if err != nil {
		return err
	}
	for {
		key, present, _, ok, err := m.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if pred(present) {
			if err := builder.Insert(key); err != nil {
				return err
			}
		}
	}
}

func mergeMaps(builder *fst.Builder, pred predicate, strategy Strategy, maps []*fst.Map) error {
	streams := make([]streamer, len(maps))
	for i, m := range maps {
		streams[i] = m.Stream()
	}
	mg, err := newMerger(streams)
	if err != nil {
		return err
	}
	for {
		key, present, values, ok, err := mg.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if pred(present) {
			v := strategy.resolve(collectValues(present, values))
			if err := builder.InsertValue(key, v); err != nil {
				return err
			}
		}
	}
}

// requireSets checks the "primary plus zero or more others" input
// contract: at least the primary must be given.
func requireSets(op string, sets []*fst.Set) error {
	if len(sets) < 1 {
		return &fsterr.UsageError{Op: op, Detail: "requires at least a primary input"}
	}
	return nil
}

// requireMaps checks the "primary plus zero or more others" input
// contract: at least the primary must be given.
func requireMaps(op string, maps []*fst.Map) error {
	if len(maps) < 1 {
		return &fsterr.UsageError{Op: op, Detail: "requires at least a primary input"}
	}
	return nil
}

// UnionSets streams every key present in any of sets into builder.
func UnionSets(builder *fst.Builder, sets ...*fst.Set) error {
	if err := requireSets("UnionSets", sets); err != nil {
		return err
	}
	return mergeSets(builder, unionPredicate, sets)
}

// IntersectionSets streams every key present in all of sets into
// builder.
func IntersectionSets(builder *fst.Builder, sets ...*fst.Set) error {
	if err := requireSets("IntersectionSets", sets); err != nil {
		return err
	}
	return mergeSets(builder, intersectionPredicate, sets)
}

// DifferenceSets streams every key present in sets[0] and absent from
// every other input into builder.
func DifferenceSets(builder *fst.Builder, sets ...*fst.Set) error {
	if err := requireSets("DifferenceSets", sets); err != nil {
		return err
	}
	return mergeSets(builder, differencePredicate, sets)
}

// SymmetricDifferenceSets streams every key present in an odd number of
// sets into builder.
func SymmetricDifferenceSets(builder *fst.Builder, sets ...*fst.Set) error {
	if err := requireSets("SymmetricDifferenceSets", sets); err != nil {
		return err
	}
	return mergeSets(builder, symmetricDifferencePredicate, sets)
}

// UnionMaps streams every key present in any of maps into builder,
// resolving conflicting values with strategy.
func UnionMaps(builder *fst.Builder, strategy Strategy, maps ...*fst.Map) error {
	if err := requireMaps("UnionMaps", maps); err != nil {
		return err
	}
	return mergeMaps(builder, unionPredicate, strategy, maps)
}

// IntersectionMaps streams every key present in all of maps into
// builder, resolving conflicting values with strategy.
func IntersectionMaps(builder *fst.Builder, strategy Strategy, maps ...*fst.Map) error {
	if err := requireMaps("IntersectionMaps", maps); err != nil {
		return err
	}
	return mergeMaps(builder, intersectionPredicate, strategy, maps)
}

// DifferenceMaps streams every key present in maps[0] and absent from
// every other input into builder, keeping maps[0]'s value.
func DifferenceMaps(builder *fst.Builder, maps ...*fst.Map) error {
	if err := requireMaps("DifferenceMaps", maps); err != nil {
		return err
	}
	return mergeMaps(builder, differencePredicate, First, maps)
}

// SymmetricDifferenceMaps streams every key present in an odd number of
// maps into builder, resolving conflicting values with strategy.
func SymmetricDifferenceMaps(builder *fst.Builder, strategy Strategy, maps ...*fst.Map) error {
	if err := requireMaps("SymmetricDifferenceMaps", maps); err != nil {
		return err
	}
	return mergeMaps(builder, symmetricDifferencePredicate, strategy, maps)
}
