package faultguard

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var ErrUnresolvedSlot = errors.New("faultguard: guarded region entered without a slot")

// Guard runs protected blocks for the goroutine that resolver names. A Guard
// is not shared between goroutines; give each worker its own, built over a
// shared Registry.
type Guard struct {
	reg      *Registry
	resolver SlotResolver
	log      zerolog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger used to report trapped faults.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Guard) { g.log = l }
}

// New returns a guard over reg whose slot is supplied by resolver.
func New(reg *Registry, resolver SlotResolver, opts ...Option) *Guard {
	g := &Guard{reg: reg, resolver: resolver, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Registry returns the registry the guard arms.
func (g *Guard) Registry() *Registry { return g.reg }

// Try runs protected. When enabled is false it is a plain call: nothing is
// armed and a fault follows whatever disposition is already in effect. When
// enabled is true a memory access fault inside protected abandons it and runs
// recovery instead. Any other panic passes through after teardown.
//
// Entering an enabled region from an unresolved slot panics with
// ErrUnresolvedSlot.
func (g *Guard) Try(enabled bool, protected, recovery func()) {
	g.try(enabled, protected, func(*Fault) {
		if recovery != nil {
			recovery()
		}
	})
}

// Run is Try with the trapped fault returned as a *Fault error.
func (g *Guard) Run(enabled bool, protected func()) (err error) {
	g.try(enabled, protected, func(f *Fault) { err = f })
	return err
}

func (g *Guard) try(enabled bool, protected func(), recovery func(*Fault)) {
	if !enabled {
		protected()
		return
	}
	// The slot is resolved before the disposition is touched so a bad index
	// leaves the goroutine exactly as it was.
	slot := g.resolver.CurrentSlot()
	if !validSlot(slot) {
		panic(fmt.Errorf("%w: %d", ErrUnresolvedSlot, slot))
	}

	rp := &RecoveryPoint{slot: slot, outer: g.reg.Lookup(slot)}
	rp.prev = installHandler()
	rp.state = Armed
	// slot was validated above, so Register cannot fail.
	_ = g.reg.Register(slot, rp)
	g.reg.armed.Add(1)
	defer g.teardown(rp)

	fault := g.reg.protect(rp, protected)
	if fault == nil {
		rp.state = Completed
		return
	}
	g.log.Debug().
		Int("slot", fault.Slot).
		Str("class", fault.Class.String()).
		Str("addr", fmt.Sprintf("%#x", fault.Addr)).
		Msg("fault trapped")
	recovery(fault)
}

func (g *Guard) teardown(rp *RecoveryPoint) {
	g.reg.reinstate(rp)
	restoreDisposition(rp.prev)
	rp.state = Idle
}
