package automaton

// Always matches every byte sequence, including the empty one.
type Always struct{}

func (Always) Start() State               { return struct{}{} }
func (Always) Step(s State, _ byte) State  { return s }
func (Always) IsMatch(State) bool          { return true }
func (Always) CanMatch(State) bool         { return true }

// Never matches nothing.
type Never struct{}

func (Never) Start() State              { return struct{}{} }
func (Never) Step(s State, _ byte) State { return s }
func (Never) IsMatch(State) bool        { return false }
func (Never) CanMatch(State) bool       { return false }

// strState tracks how many leading bytes of the target string have been
// matched so far, or -1 for the sink (a mismatch that can never recover).
type strState int

// Str matches byte sequences equal to s exactly.
type Str struct {
	s []byte
}

// NewStr returns an automaton matching exactly s.
func NewStr(s []byte) Str {
	cp := make([]byte, len(s))
	copy(cp, s)
	return Str{s: cp}
}

func (a Str) Start() State { return strState(0) }

func (a Str) Step(s State, b byte) State {
	idx := s.(strState)
	if idx < 0 || int(idx) >= len(a.s) || a.s[idx] != b {
		return strState(-1)
	}
	return idx + 1
}

func (a Str) IsMatch(s State) bool {
	idx := s.(strState)
	return int(idx) == len(a.s)
}

func (a Str) CanMatch(s State) bool {
	return s.(strState) >= 0
}

// subseqState is the index of the next byte of the needle still needed.
type subseqState int

// Subsequence matches byte sequences that contain s as a (not necessarily
// contiguous) subsequence.
type Subsequence struct {
	s []byte
}

// NewSubsequence returns an automaton matching any byte sequence containing
// s as a subsequence.
func NewSubsequence(s []byte) Subsequence {
	cp := make([]byte, len(s))
	copy(cp, s)
	return Subsequence{s: cp}
}

func (a Subsequence) Start() State { return subseqState(0) }

func (a Subsequence) Step(s State, b byte) State {
	idx := s.(subseqState)
	if int(idx) < len(a.s) && a.s[idx] == b {
		return idx + 1
	}
	return idx
}

func (a Subsequence) IsMatch(s State) bool {
	return int(s.(subseqState)) == len(a.s)
}

func (a Subsequence) CanMatch(State) bool {
	return true
}
