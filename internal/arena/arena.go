// Package arena allocates fixed-layout records outside the Go heap.
//
// A record allocated here never moves and is invisible to the garbage
// collector, so foreign code may keep pointers into it for as long as the
// block is live. Records may only hold scalars and pointers into memory that
// is itself outside the Go heap.
package arena

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

// ErrUnsupported is returned on platforms without an anonymous mapping
// primitive.
var ErrUnsupported = errors.New("arena: unsupported platform")

// Block owns one record of type T.
type Block[T any] struct {
	mu   sync.Mutex
	ptr  *T
	mem  region
	size uintptr
}

// New maps a zeroed T.
func New[T any]() (*Block[T], error) {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		size = 1
	}
	mem, err := mapRegion(size)
	if err != nil {
		return nil, fmt.Errorf("arena: map %d bytes: %w", size, err)
	}
	return &Block[T]{
		ptr:  (*T)(mem.pointer()),
		mem:  mem,
		size: size,
	}, nil
}

// Value returns the record. The pointer is stable until Free and nil after.
func (b *Block[T]) Value() *T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ptr
}

// Size reports the record size in bytes.
func (b *Block[T]) Size() uintptr {
	return b.size
}

// Free unmaps the record. Later calls are no-ops.
func (b *Block[T]) Free() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ptr == nil {
		return nil
	}
	b.ptr = nil
	return b.mem.unmap()
}
