// Package bytesearch provides the small byte-slice comparison helpers the
// builder needs while walking inserted keys. coregx-coregex gates its
// equivalent routines behind golang.org/x/sys/cpu feature detection for
// SIMD dispatch over multi-kilobyte haystacks; key comparisons here are a
// handful of bytes at a time, well under the crossover where dispatch
// overhead would pay for itself, so this stays a plain Go loop rather than
// importing that dispatch machinery.
package bytesearch

// CommonPrefixLen returns the length of the shared leading bytes of a and
// b. A nil/empty a or b yields 0.
func CommonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
