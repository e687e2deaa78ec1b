// Package fstio supplies the ambient I/O collaborators kept out of the
// core builder/reader types: a builder sink that writes an in-memory
// buffer or atomically publishes a file, and a reader source backed by
// an mmap'd file. A plain byte slice is wrapped by fst.FromBytes instead.
package fstio

import (
	"bytes"

	"github.com/latticekv/fst"
	"github.com/natefinch/atomic"
)

// MemorySentinel is the facade's designated path string that selects an
// in-memory sink instead of a file sink.
const MemorySentinel = ":memory:"

// NewSink dispatches on path: MemorySentinel selects an in-memory sink,
// any other value selects a file sink that publishes atomically to path
// on Finish.
func NewSink(path string) fst.Sink {
	if path == MemorySentinel {
		return NewMemorySink()
	}
	return NewFileSink(path)
}

// MemorySink accumulates writes in a growable buffer and hands back the
// accumulated bytes on Finish.
type MemorySink struct {
	buf bytes.Buffer
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Write(p []byte) (int, error) { return s.buf.Write(p) }

// Finish returns the accumulated image bytes.
func (s *MemorySink) Finish() ([]byte, error) {
	return s.buf.Bytes(), nil
}

// FileSink buffers writes in memory and publishes them to path with a
// single atomic rename on Finish, so a reader can never observe a
// partially written image — grounded on natefinch/atomic.WriteFile's use
// in calvinalkan-agent-task for the same "never leave a half-written
// file visible" guarantee the builder requires of a crash-safe publish.
type FileSink struct {
	path string
	buf  bytes.Buffer
}

// NewFileSink creates a sink that will atomically publish to path on
// Finish.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Write(p []byte) (int, error) { return s.buf.Write(p) }

// Finish atomically renames the buffered image into place.
func (s *FileSink) Finish() ([]byte, error) {
	if err := atomic.WriteFile(s.path, bytes.NewReader(s.buf.Bytes())); err != nil {
		return nil, err
	}
	return nil, nil
}
