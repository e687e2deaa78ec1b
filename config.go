package fst

import "github.com/latticekv/fst/fsterr"

// BuilderConfig controls construction-time tuning knobs for a Builder.
// Grounded on coregx-coregex/meta.Config's DefaultConfig/Validate
// convention.
type BuilderConfig struct {
	// RegisterCapacityHint pre-sizes the register's hash map, the way
	// nfa.NewBuilderWithCapacity pre-sizes its state slice. Purely a
	// performance hint; has no effect on the produced image.
	RegisterCapacityHint int
}

// DefaultBuilderConfig returns the configuration used by New{Set,Map}Builder.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{RegisterCapacityHint: 64}
}

// Validate reports whether c is usable.
func (c BuilderConfig) Validate() error {
	if c.RegisterCapacityHint < 0 {
		return &fsterr.UsageError{Op: "BuilderConfig.Validate", Detail: "RegisterCapacityHint must be >= 0"}
	}
	return nil
}
