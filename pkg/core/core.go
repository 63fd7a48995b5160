package core

import (
	"context"

	"github.com/redactyl/guardscan/internal/engine"
	"github.com/redactyl/guardscan/internal/faultguard"
	"github.com/redactyl/guardscan/internal/types"
)

// Type aliases keep the public surface in step with the engine.
type (
	Config      = engine.Config
	Result      = engine.Result
	Finding     = types.Finding
	FaultRecord = engine.FaultRecord
	GuardMode   = engine.GuardMode
)

const (
	GuardAuto   = engine.GuardAuto
	GuardAlways = engine.GuardAlways
	GuardOff    = engine.GuardOff
)

// Scan returns the findings under cfg.Root.
func Scan(cfg Config) ([]Finding, error) { return engine.Scan(cfg) }

// ScanWithStats also reports timing, faulted files and guard counters.
func ScanWithStats(cfg Config) (Result, error) { return engine.ScanWithStats(cfg) }

// ScanContext stops walking when ctx is done.
func ScanContext(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanContext(ctx, cfg)
}

func DetectorIDs() []string { return engine.DetectorIDs() }

// Fault guard re-exports.
type (
	Guard         = faultguard.Guard
	Fault         = faultguard.Fault
	FaultClass    = faultguard.FaultClass
	Registry      = faultguard.Registry
	SlotPool      = faultguard.SlotPool
	SlotResolver  = faultguard.SlotResolver
	FixedSlot     = faultguard.FixedSlot
	GuardOption   = faultguard.Option
	RecoveryPoint = faultguard.RecoveryPoint
)

const MaxThreads = faultguard.MaxThreads

var ErrFault = faultguard.ErrFault

func NewRegistry() *Registry { return faultguard.NewRegistry() }

func NewSlotPool(n int) *SlotPool { return faultguard.NewSlotPool(n) }

func NewGuard(reg *Registry, resolver SlotResolver, opts ...GuardOption) *Guard {
	return faultguard.New(reg, resolver, opts...)
}
