package fst

import (
	"errors"
	"testing"

	"github.com/latticekv/fst/fsterr"
)

func buildSet(t *testing.T, keys ...string) []byte {
	t.Helper()
	sink := &memSink{}
	b := NewSetBuilder(sink)
	for _, k := range keys {
		if err := b.Insert([]byte(k)); err != nil {
			t.Fatalf("Insert(%q): %v", k, err)
		}
	}
	img, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return img
}

func buildMap(t *testing.T, kvs map[string]uint64, order []string) []byte {
	t.Helper()
	sink := &memSink{}
	b := NewMapBuilder(sink)
	for _, k := range order {
		if err := b.InsertValue([]byte(k), kvs[k]); err != nil {
			t.Fatalf("InsertValue(%q): %v", k, err)
		}
	}
	img, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return img
}

type memSink struct {
	buf []byte
}

func (s *memSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *memSink) Finish() ([]byte, error) { return s.buf, nil }

func TestBuilderSetRoundTrip(t *testing.T) {
	keys := []string{"a", "ab", "abc", "abd", "b"}
	img := buildSet(t, keys...)

	r, err := open(FromBytes(img))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if r.IsMap() {
		t.Fatalf("expected set image")
	}
	if r.Len() != len(keys) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(keys))
	}
	for _, k := range keys {
		ok, err := r.contains([]byte(k))
		if err != nil {
			t.Fatalf("contains(%q): %v", k, err)
		}
		if !ok {
			t.Errorf("contains(%q) = false, want true", k)
		}
	}
	for _, k := range []string{"", "ac", "abcd", "z"} {
		ok, err := r.contains([]byte(k))
		if err != nil {
			t.Fatalf("contains(%q): %v", k, err)
		}
		if ok {
			t.Errorf("contains(%q) = true, want false", k)
		}
	}
}

func TestBuilderMapOutputPushing(t *testing.T) {
	kvs := map[string]uint64{"ab": 5, "ac": 7}
	img := buildMap(t, kvs, []string{"ab", "ac"})

	r, err := open(FromBytes(img))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for k, want := range kvs {
		got, ok, err := r.get([]byte(k))
		if err != nil {
			t.Fatalf("get(%q): %v", k, err)
		}
		if !ok {
			t.Fatalf("get(%q): not found", k)
		}
		if got != want {
			t.Errorf("get(%q) = %d, want %d", k, got, want)
		}
	}
}

func TestBuilderMapOutputPushingPrefixChain(t *testing.T) {
	kvs := map[string]uint64{"a": 5, "ab": 3}
	img := buildMap(t, kvs, []string{"a", "ab"})

	r, err := open(FromBytes(img))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for k, want := range kvs {
		got, ok, err := r.get([]byte(k))
		if err != nil {
			t.Fatalf("get(%q): %v", k, err)
		}
		if !ok {
			t.Fatalf("get(%q): not found", k)
		}
		if got != want {
			t.Errorf("get(%q) = %d, want %d", k, got, want)
		}
	}
}

func TestBuilderMapOutputPushingDeepPrefixChain(t *testing.T) {
	kvs := map[string]uint64{"xa": 10, "xab": 4}
	img := buildMap(t, kvs, []string{"xa", "xab"})

	r, err := open(FromBytes(img))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for k, want := range kvs {
		got, ok, err := r.get([]byte(k))
		if err != nil {
			t.Fatalf("get(%q): %v", k, err)
		}
		if !ok {
			t.Fatalf("get(%q): not found", k)
		}
		if got != want {
			t.Errorf("get(%q) = %d, want %d", k, got, want)
		}
	}
}

func TestBuilderRejectsOutOfOrder(t *testing.T) {
	sink := &memSink{}
	b := NewSetBuilder(sink)
	if err := b.Insert([]byte("b")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := b.Insert([]byte("a"))
	var orderErr *fsterr.OrderError
	if !errors.As(err, &orderErr) {
		t.Fatalf("Insert out of order: got %v, want *fsterr.OrderError", err)
	}
	if err := b.Insert([]byte("c")); err == nil {
		t.Errorf("Insert after poisoning should still fail")
	}
}

func TestBuilderRejectsDuplicate(t *testing.T) {
	sink := &memSink{}
	b := NewSetBuilder(sink)
	if err := b.Insert([]byte("a")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	var orderErr *fsterr.OrderError
	if err := b.Insert([]byte("a")); !errors.As(err, &orderErr) {
		t.Fatalf("duplicate Insert: got %v, want *fsterr.OrderError", err)
	}
}

func TestBuilderKindMismatch(t *testing.T) {
	sink := &memSink{}
	b := NewSetBuilder(sink)
	var usageErr *fsterr.UsageError
	if err := b.InsertValue([]byte("a"), 1); !errors.As(err, &usageErr) {
		t.Fatalf("InsertValue on set builder: got %v, want *fsterr.UsageError", err)
	}

	mb := NewMapBuilder(sink)
	if err := mb.Insert([]byte("a")); !errors.As(err, &usageErr) {
		t.Fatalf("Insert on map builder: got %v, want *fsterr.UsageError", err)
	}
}

func TestBuilderEmptyKey(t *testing.T) {
	img := buildSet(t, "", "a")
	r, err := open(FromBytes(img))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ok, err := r.contains([]byte(""))
	if err != nil {
		t.Fatalf("contains(\"\"): %v", err)
	}
	if !ok {
		t.Errorf("contains(\"\") = false, want true")
	}
}

func TestBuilderDeduplicatesSuffixes(t *testing.T) {
	// "cat" and "bat" share the identical suffix automaton after their
	// first byte, exercising the register's minimization path.
	img := buildSet(t, "bat", "cat")
	r, err := open(FromBytes(img))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, k := range []string{"bat", "cat"} {
		ok, err := r.contains([]byte(k))
		if err != nil || !ok {
			t.Errorf("contains(%q) = %v, %v, want true, nil", k, ok, err)
		}
	}
}

func TestBuilderFinishTwiceFails(t *testing.T) {
	sink := &memSink{}
	b := NewSetBuilder(sink)
	if err := b.Insert([]byte("a")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := b.Finish(); err == nil {
		t.Errorf("second Finish should fail")
	}
	if err := b.Insert([]byte("b")); err == nil {
		t.Errorf("Insert after Finish should fail")
	}
}
