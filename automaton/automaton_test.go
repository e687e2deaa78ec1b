package automaton

import "testing"

func runAutomaton(a Automaton, s []byte) bool {
	st := a.Start()
	for _, b := range s {
		if !a.CanMatch(st) {
			return false
		}
		st = a.Step(st, b)
	}
	return a.IsMatch(st)
}

func TestAlways(t *testing.T) {
	a := Always{}
	for _, s := range [][]byte{nil, []byte(""), []byte("anything")} {
		if !runAutomaton(a, s) {
			t.Errorf("Always should match %q", s)
		}
	}
}

func TestNever(t *testing.T) {
	a := Never{}
	for _, s := range [][]byte{nil, []byte(""), []byte("anything")} {
		if runAutomaton(a, s) {
			t.Errorf("Never should not match %q", s)
		}
	}
	if a.CanMatch(a.Start()) {
		t.Error("Never.CanMatch should always be false")
	}
}

func TestStr(t *testing.T) {
	a := NewStr([]byte("cat"))
	tests := []struct {
		in   string
		want bool
	}{
		{"cat", true},
		{"", false},
		{"ca", false},
		{"cats", false},
		{"dog", false},
	}
	for _, tt := range tests {
		if got := runAutomaton(a, []byte(tt.in)); got != tt.want {
			t.Errorf("Str(cat).match(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSubsequence(t *testing.T) {
	a := NewSubsequence([]byte("bd"))
	tests := []struct {
		in   string
		want bool
	}{
		{"abcde", true},
		{"bd", true},
		{"db", false},
		{"xyz", false},
		{"b", false},
	}
	for _, tt := range tests {
		if got := runAutomaton(a, []byte(tt.in)); got != tt.want {
			t.Errorf("Subsequence(bd).match(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComplement(t *testing.T) {
	a := Complement{Inner: NewStr([]byte("cat"))}
	if runAutomaton(a, []byte("cat")) {
		t.Error("Complement(Str(cat)) should not match \"cat\"")
	}
	if !runAutomaton(a, []byte("dog")) {
		t.Error("Complement(Str(cat)) should match \"dog\"")
	}
}

func TestStartsWith(t *testing.T) {
	a := StartsWith{Inner: NewStr([]byte("foo"))}
	tests := []struct {
		in   string
		want bool
	}{
		{"foo", true},
		{"foobar", true},
		{"fo", false},
		{"barfoo", false},
	}
	for _, tt := range tests {
		if got := runAutomaton(a, []byte(tt.in)); got != tt.want {
			t.Errorf("StartsWith(Str(foo)).match(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnionIntersection(t *testing.T) {
	u := Union{A: NewStr([]byte("cat")), B: NewStr([]byte("dog"))}
	if !runAutomaton(u, []byte("cat")) || !runAutomaton(u, []byte("dog")) {
		t.Error("Union(cat,dog) should match both")
	}
	if runAutomaton(u, []byte("fox")) {
		t.Error("Union(cat,dog) should not match fox")
	}

	i := Intersection{A: NewSubsequence([]byte("a")), B: NewSubsequence([]byte("b"))}
	if !runAutomaton(i, []byte("ab")) {
		t.Error("Intersection(a,b) should match \"ab\"")
	}
	if runAutomaton(i, []byte("a")) {
		t.Error("Intersection(a,b) should not match \"a\" alone")
	}
}

func TestCanMatchPruning(t *testing.T) {
	a := NewStr([]byte("cat"))
	st := a.Start()
	st = a.Step(st, 'x') // mismatch, sink state
	if a.CanMatch(st) {
		t.Error("Str should report CanMatch=false once in the sink state")
	}
}
