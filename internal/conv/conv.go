// Package conv provides safe integer conversion helpers for the FST builder
// and reader.
//
// These functions check the value before a sign-changing integer conversion
// so that a negative value never silently wraps around. They panic instead
// of returning an error since such a value indicates a programming error.
package conv

// IntToUint64 safely converts an int to uint64.
// Panics if n < 0.
//
//go:inline
func IntToUint64(n int) uint64 {
	if n < 0 {
		panic("integer overflow: negative int cannot convert to uint64")
	}
	return uint64(n)
}
