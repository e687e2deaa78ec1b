package fsterr

import (
	"errors"
	"testing"
)

func TestErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		sentinel error
	}{
		{"OrderError", &OrderError{Prev: []byte("a"), Got: []byte("a")}, ErrOrder},
		{"ValueError", &ValueError{Key: []byte("k"), Value: 1}, ErrValue},
		{"FormatError", &FormatError{Reason: "bad magic"}, ErrFormat},
		{"UsageError", &UsageError{Op: "Builder.Insert"}, ErrUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			if tt.err.Error() == "" {
				t.Errorf("Error() returned empty string")
			}
		})
	}
}

func TestUsageErrorWithoutDetail(t *testing.T) {
	err := &UsageError{Op: "Builder.Finish"}
	want := "fst: invalid use of Builder.Finish"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
