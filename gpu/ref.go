package gpu

import (
	"fmt"
	"sync/atomic"
)

// Ref is an embeddable reference count that starts at one.
type Ref struct {
	count   atomic.Int64
	destroy func()
}

func (r *Ref) init(destroy func()) {
	r.count.Store(1)
	r.destroy = destroy
}

// Retain adds a holder. Retaining a released resource panics.
func (r *Ref) Retain() {
	if r.count.Add(1) <= 1 {
		panic(fmt.Errorf("retain: %w", ErrReleased))
	}
}

// Release drops a holder and destroys the resource when none remain.
func (r *Ref) Release() {
	switch n := r.count.Add(-1); {
	case n == 0:
		if r.destroy != nil {
			r.destroy()
		}
	case n < 0:
		panic(fmt.Errorf("release: %w", ErrReleased))
	}
}

// Count reports the current number of holders.
func (r *Ref) Count() int64 {
	return r.count.Load()
}

// Released reports whether the last holder is gone.
func (r *Ref) Released() bool {
	return r.count.Load() <= 0
}
