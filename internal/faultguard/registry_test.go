package faultguard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Bounds(t *testing.T) {
	reg := NewRegistry()
	rp := &RecoveryPoint{}

	for _, slot := range []int{UnresolvedSlot, -7, MaxThreads, MaxThreads + 1} {
		err := reg.Register(slot, rp)
		assert.ErrorIs(t, err, ErrSlotOutOfRange, "slot %d", slot)
		assert.Nil(t, reg.Lookup(slot))
		assert.False(t, reg.Armed(slot))
		reg.Clear(slot) // must not panic
	}
	for i := 0; i < MaxThreads; i++ {
		assert.Nil(t, reg.Lookup(i), "out of range register leaked into slot %d", i)
	}
}

func TestRegistry_RegisterLookupClear(t *testing.T) {
	reg := NewRegistry()
	a, b := &RecoveryPoint{slot: 0}, &RecoveryPoint{slot: MaxThreads - 1}

	require.NoError(t, reg.Register(0, a))
	require.NoError(t, reg.Register(MaxThreads-1, b))
	assert.Same(t, a, reg.Lookup(0))
	assert.Same(t, b, reg.Lookup(MaxThreads-1))
	assert.Nil(t, reg.Lookup(1))

	reg.Clear(0)
	assert.Nil(t, reg.Lookup(0))
	assert.Same(t, b, reg.Lookup(MaxThreads-1))
}

func TestRegistry_ReinstateOuter(t *testing.T) {
	reg := NewRegistry()
	outer := &RecoveryPoint{slot: 9}
	inner := &RecoveryPoint{slot: 9, outer: outer}
	require.NoError(t, reg.Register(9, inner))

	reg.reinstate(inner)
	assert.Same(t, outer, reg.Lookup(9))
	reg.reinstate(outer)
	assert.Nil(t, reg.Lookup(9))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "armed", Armed.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "trapped", Trapped.String())
}

func TestSlotPool_ClampsSize(t *testing.T) {
	assert.Equal(t, 1, NewSlotPool(0).Size())
	assert.Equal(t, 1, NewSlotPool(-3).Size())
	assert.Equal(t, MaxThreads, NewSlotPool(MaxThreads*4).Size())
}

func TestSlotPool_DistinctIndices(t *testing.T) {
	pool := NewSlotPool(MaxThreads)
	seen := map[int]bool{}
	var held []*Slot
	for i := 0; i < MaxThreads; i++ {
		s, err := pool.TryAcquire()
		require.NoError(t, err)
		idx := s.CurrentSlot()
		assert.True(t, validSlot(idx))
		assert.False(t, seen[idx], "index %d handed out twice", idx)
		seen[idx] = true
		held = append(held, s)
	}

	_, err := pool.TryAcquire()
	assert.ErrorIs(t, err, ErrPoolExhausted)

	held[0].Release()
	held[0].Release()
	assert.Equal(t, UnresolvedSlot, held[0].CurrentSlot())

	s, err := pool.TryAcquire()
	require.NoError(t, err)
	_, err = pool.TryAcquire()
	assert.ErrorIs(t, err, ErrPoolExhausted, "double release must not add a second copy")
	s.Release()
}

func TestSlotPool_AcquireHonorsContext(t *testing.T) {
	pool := NewSlotPool(1)
	held, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = pool.Acquire(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFixedSlot(t *testing.T) {
	assert.Equal(t, 5, FixedSlot(5).CurrentSlot())
	assert.Equal(t, UnresolvedSlot, FixedSlot(UnresolvedSlot).CurrentSlot())
}
