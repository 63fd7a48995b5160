package faultguard

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// MaxThreads is the number of slots in a Registry, and so the maximum number
// of goroutines that can be inside guarded regions of one registry at once.
const MaxThreads = 32

// UnresolvedSlot is returned by a SlotResolver that cannot name a slot for
// the caller.
const UnresolvedSlot = -1

var ErrSlotOutOfRange = errors.New("faultguard: slot out of range")

// State is the lifecycle position of one guarded invocation.
type State uint8

const (
	Idle State = iota
	Armed
	Completed
	Trapped
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Completed:
		return "completed"
	case Trapped:
		return "trapped"
	default:
		return "idle"
	}
}

// RecoveryPoint is the record of one armed guarded region. It is owned by
// the invocation that created it and only lives as long as that invocation.
type RecoveryPoint struct {
	slot  int
	prev  bool
	outer *RecoveryPoint
	state State
}

// Slot returns the registry slot the point was registered under.
func (rp *RecoveryPoint) Slot() int { return rp.slot }

// State reports where the owning invocation is in its lifecycle.
func (rp *RecoveryPoint) State() State { return rp.state }

// Outer returns the recovery point this one shadows, or nil.
func (rp *RecoveryPoint) Outer() *RecoveryPoint { return rp.outer }

// Stats counts guarded regions over the lifetime of a registry.
type Stats struct {
	Armed   uint64
	Trapped uint64
}

// Registry is a fixed table of active recovery points, one per slot. Each
// goroutine only ever writes its own slot, so no lock is taken; entries are
// atomic so other goroutines may inspect them.
type Registry struct {
	points  [MaxThreads]atomic.Pointer[RecoveryPoint]
	armed   atomic.Uint64
	trapped atomic.Uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func validSlot(slot int) bool {
	return slot >= 0 && slot < MaxThreads
}

// Register makes rp the active recovery point of slot.
func (r *Registry) Register(slot int, rp *RecoveryPoint) error {
	if !validSlot(slot) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	r.points[slot].Store(rp)
	return nil
}

// Clear drops the active recovery point of slot. Out of range slots are
// ignored.
func (r *Registry) Clear(slot int) {
	if !validSlot(slot) {
		return
	}
	r.points[slot].Store(nil)
}

// Lookup returns the active recovery point of slot, or nil when the slot is
// idle or the index is not a valid slot.
func (r *Registry) Lookup(slot int) *RecoveryPoint {
	if !validSlot(slot) {
		return nil
	}
	return r.points[slot].Load()
}

// Armed reports whether slot currently has an active recovery point.
func (r *Registry) Armed(slot int) bool {
	return r.Lookup(slot) != nil
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() Stats {
	return Stats{Armed: r.armed.Load(), Trapped: r.trapped.Load()}
}

// reinstate puts the shadowed point of an exiting region back in its slot.
func (r *Registry) reinstate(rp *RecoveryPoint) {
	if rp.outer != nil {
		r.points[rp.slot].Store(rp.outer)
		return
	}
	r.Clear(rp.slot)
}
