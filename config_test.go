package fst

import "testing"

func TestDefaultBuilderConfigValidates(t *testing.T) {
	if err := DefaultBuilderConfig().Validate(); err != nil {
		t.Errorf("DefaultBuilderConfig().Validate() = %v, want nil", err)
	}
}

func TestBuilderConfigRejectsNegativeHint(t *testing.T) {
	cfg := BuilderConfig{RegisterCapacityHint: -1}
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for negative RegisterCapacityHint")
	}
}
