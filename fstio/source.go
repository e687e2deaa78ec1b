package fstio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Source is a memory-mapped, read-only view of a file, grounded directly
// on calvinalkan-agent-task's BinaryCache: open, stat, mmap PROT_READ /
// MAP_SHARED, and never write back. Uses golang.org/x/sys/unix rather
// than the stdlib syscall package so the same call works across every
// unix x/sys already supports, not just the platforms syscall pins down.
type Source struct {
	file *os.File
	data []byte
}

// Open memory-maps path for read-only access.
func Open(path string) (*Source, error) {
	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		file.Close()
		return nil, fmt.Errorf("fstio: %s is empty", path)
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("fstio: mmap %s: %w", path, err)
	}
	return &Source{file: file, data: data}, nil
}

// Bytes returns the mapped region.
func (s *Source) Bytes() []byte { return s.data }

// Close unmaps the region and closes the underlying file.
func (s *Source) Close() error {
	if s.data != nil {
		if err := unix.Munmap(s.data); err != nil {
			return fmt.Errorf("fstio: munmap: %w", err)
		}
		s.data = nil
	}
	return s.file.Close()
}
