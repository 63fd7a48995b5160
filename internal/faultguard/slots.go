package faultguard

import (
	"context"
	"errors"
	"sync/atomic"
)

var ErrPoolExhausted = errors.New("faultguard: no free slot")

// SlotResolver names the registry slot of the calling goroutine. It returns
// UnresolvedSlot when the caller has none. The index must stay stable and
// unique to the caller for as long as it is inside a guarded region.
type SlotResolver interface {
	CurrentSlot() int
}

// FixedSlot resolves to a slot index chosen by the caller.
type FixedSlot int

func (s FixedSlot) CurrentSlot() int { return int(s) }

// SlotPool hands out distinct slot indices to worker goroutines.
type SlotPool struct {
	free chan int
	size int
}

// NewSlotPool returns a pool of n slots, clamped to [1, MaxThreads].
func NewSlotPool(n int) *SlotPool {
	if n < 1 {
		n = 1
	}
	if n > MaxThreads {
		n = MaxThreads
	}
	p := &SlotPool{free: make(chan int, n), size: n}
	for i := 0; i < n; i++ {
		p.free <- i
	}
	return p
}

// Size returns the number of slots the pool manages.
func (p *SlotPool) Size() int { return p.size }

// Acquire blocks until a slot is free or ctx is done.
func (p *SlotPool) Acquire(ctx context.Context) (*Slot, error) {
	select {
	case idx := <-p.free:
		return newSlot(p, idx), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryAcquire returns a free slot without blocking.
func (p *SlotPool) TryAcquire() (*Slot, error) {
	select {
	case idx := <-p.free:
		return newSlot(p, idx), nil
	default:
		return nil, ErrPoolExhausted
	}
}

// Slot is a pooled slot index held by one goroutine. After Release it
// resolves to UnresolvedSlot, so a stale handle can never arm another
// goroutine's slot.
type Slot struct {
	pool *SlotPool
	idx  atomic.Int64
}

func newSlot(p *SlotPool, idx int) *Slot {
	s := &Slot{pool: p}
	s.idx.Store(int64(idx))
	return s
}

// CurrentSlot implements SlotResolver.
func (s *Slot) CurrentSlot() int {
	return int(s.idx.Load())
}

// Release returns the index to the pool. Calling it more than once is a no-op.
func (s *Slot) Release() {
	idx := s.idx.Swap(UnresolvedSlot)
	if idx == UnresolvedSlot {
		return
	}
	s.pool.free <- int(idx)
}
