// Package faultguard runs blocks of code that may read invalid memory and
// turns the resulting hardware fault into an ordinary recovery outcome.
//
// A Guard is bound to one slot of a Registry. Arming a guarded region saves
// the calling goroutine's panic-on-fault disposition, enables it, and records
// a RecoveryPoint for the slot. When the protected block touches an unmapped
// or truncated page, the runtime raises the fault as a panic on the same
// goroutine; the guard's handler checks the registry and, if the region is
// still armed, abandons the block and runs the recovery block instead. The
// prior disposition and recovery point are reinstated on every exit path, so
// regions nest.
//
// Faults outside any armed region, and faults on goroutines started from
// inside a protected block, keep the runtime's default behavior: the process
// terminates.
//
// Typical use from a worker goroutine:
//
//	slot, err := pool.Acquire(ctx)
//	if err != nil { return err }
//	defer slot.Release()
//	g := faultguard.New(reg, slot)
//	err = g.Run(true, func() { findings = match(mapped) })
package faultguard
