package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/redactyl/guardscan/internal/cache"
	"github.com/redactyl/guardscan/internal/detectors"
	"github.com/redactyl/guardscan/internal/faultguard"
	"github.com/redactyl/guardscan/internal/mapped"
	"github.com/redactyl/guardscan/internal/types"
)

// GuardMode selects which file reads run inside a fault guard.
type GuardMode int

const (
	// GuardAuto guards mapped reads only. Heap copies cannot fault.
	GuardAuto GuardMode = iota
	GuardAlways
	GuardOff
)

func (m GuardMode) String() string {
	switch m {
	case GuardAuto:
		return "auto"
	case GuardAlways:
		return "always"
	case GuardOff:
		return "off"
	}
	return fmt.Sprintf("GuardMode(%d)", int(m))
}

// ParseGuardMode accepts auto, always or off. The empty string is auto.
func ParseGuardMode(s string) (GuardMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return GuardAuto, nil
	case "always", "on":
		return GuardAlways, nil
	case "off", "never":
		return GuardOff, nil
	}
	return GuardAuto, fmt.Errorf("invalid guard mode %q (want auto, always or off)", s)
}

func (m GuardMode) enabled(isMapped bool) bool {
	switch m {
	case GuardAlways:
		return true
	case GuardOff:
		return false
	}
	return isMapped
}

// Config controls scope, performance and filtering of a scan.
type Config struct {
	Root             string
	IncludeGlobs     string
	ExcludeGlobs     string
	MaxBytes         int64 // <= 0 means no limit
	Threads          int
	EnableDetectors  string
	DisableDetectors string
	MinConfidence    float64
	DryRun           bool
	DefaultExcludes  bool
	NoCache          bool

	Guard  GuardMode
	NoMmap bool

	// Logger receives per-file diagnostics. Nil disables logging.
	Logger *zerolog.Logger
	// Progress is called once per file handed to a worker. Calls are
	// serialized.
	Progress func()
}

// FaultRecord is a file whose read faulted and was skipped.
type FaultRecord struct {
	Path  string                `json:"path"`
	Class faultguard.FaultClass `json:"class"`
	Addr  uintptr               `json:"addr"`
}

func (r FaultRecord) String() string {
	return fmt.Sprintf("%s: %s at %#x", r.Path, r.Class, r.Addr)
}

// Result holds findings and scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	Duration     time.Duration
	Faults       []FaultRecord
	// FileErrors aggregates per-file open and read failures. It is nil when
	// every file could be loaded.
	FileErrors *multierror.Error
	GuardStats faultguard.Stats
}

// FaultedPaths lists the paths in r.Faults.
func (r Result) FaultedPaths() []string {
	out := make([]string, 0, len(r.Faults))
	for _, f := range r.Faults {
		out = append(out, f.Path)
	}
	return out
}

// DetectorIDs returns every detector ID a finding can carry.
func DetectorIDs() []string {
	return detectors.IDs()
}

// Scan runs a scan and returns only findings.
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a scan with a background context.
func ScanWithStats(cfg Config) (Result, error) {
	return ScanContext(context.Background(), cfg)
}

// openFile loads a path for scanning. Tests swap it to inject faults.
var openFile = mapped.Open

// ScanContext walks cfg.Root and scans every eligible file on a bounded pool
// of workers. Each worker owns a faultguard slot for its whole lifetime.
// Errors on individual files never stop the scan; only a walk failure or
// ctx cancellation is returned as an error.
func ScanContext(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	threads := workerCount(cfg.Threads)

	db := cache.DB{Entries: map[string]string{}}
	if !cfg.NoCache {
		var err error
		if db, err = cache.Load(cfg.Root); err != nil {
			log.Debug().Err(err).Msg("cache not loaded")
		}
	}

	ign := loadIgnore(cfg.Root, log)
	reg := faultguard.NewRegistry()
	pool := faultguard.NewSlotPool(threads)
	jobs := make(chan fileJob, threads*4)

	var (
		mu      sync.Mutex
		out     []types.Finding
		updated = map[string]string{}
	)
	record := func(j fileJob, o fileOutcome) {
		mu.Lock()
		defer mu.Unlock()
		if cfg.Progress != nil {
			cfg.Progress()
		}
		switch {
		case o.err != nil:
			res.FileErrors = multierror.Append(res.FileErrors, o.err)
			log.Debug().Err(o.err).Str("path", j.rel).Msg("file not loaded")
		case o.fault != nil:
			res.FilesScanned++
			res.Faults = append(res.Faults, FaultRecord{Path: j.rel, Class: o.fault.Class, Addr: o.fault.Addr})
			log.Warn().Str("path", j.rel).Str("class", o.fault.Class.String()).
				Str("addr", fmt.Sprintf("%#x", o.fault.Addr)).Msg("read faulted, file skipped")
		case o.skipped:
			log.Debug().Str("path", j.rel).Str("reason", o.reason).Msg("file skipped")
		case o.cached:
		default:
			res.FilesScanned++
			out = append(out, o.findings...)
			// Only clean contents are cached; a file with findings is
			// rescanned until they are gone.
			if o.hash != "" && len(o.findings) == 0 {
				updated[j.rel] = o.hash
			}
		}
	}

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		return Walk(gctx, cfg, ign, func(rel, abs string) error {
			select {
			case jobs <- fileJob{rel: rel, abs: abs}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			slot, err := pool.Acquire(gctx)
			if err != nil {
				return err
			}
			defer slot.Release()
			w := worker{
				cfg:   cfg,
				db:    db,
				guard: faultguard.New(reg, slot, faultguard.WithLogger(log)),
			}
			for j := range jobs {
				record(j, w.scan(j))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	sortFindings(out)
	out = filterByConfidence(out, cfg.MinConfidence)
	res.Findings = filterByIDs(out, cfg.EnableDetectors, cfg.DisableDetectors)
	res.Duration = time.Since(started)
	res.GuardStats = reg.Stats()

	if !cfg.NoCache && !cfg.DryRun && len(updated) > 0 {
		for k, v := range updated {
			db.Entries[k] = v
		}
		if err := cache.Save(cfg.Root, db); err != nil {
			log.Debug().Err(err).Msg("cache not saved")
		}
	}
	return res, nil
}

func workerCount(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > faultguard.MaxThreads {
		threads = faultguard.MaxThreads
	}
	return threads
}

type fileJob struct {
	rel string
	abs string
}

type fileOutcome struct {
	findings []types.Finding
	hash     string
	cached   bool
	skipped  bool
	reason   string
	fault    *faultguard.Fault
	err      error
}

type worker struct {
	cfg   Config
	db    cache.DB
	guard *faultguard.Guard
}

// scan loads one file and inspects it. Every read of the file bytes happens
// inside the guard; the mapping is released only after the guard has been
// torn down.
func (w worker) scan(j fileJob) fileOutcome {
	load := openFile
	if w.cfg.NoMmap {
		load = mapped.ReadFile
	}
	f, err := load(j.abs)
	if err != nil {
		return fileOutcome{err: fmt.Errorf("%s: %w", j.rel, err)}
	}
	defer f.Close()

	var o fileOutcome
	err = w.guard.Run(w.cfg.Guard.enabled(f.Mapped()), func() {
		o = w.inspect(j.rel, f.Bytes())
	})
	var fault *faultguard.Fault
	if errors.As(err, &fault) {
		return fileOutcome{fault: fault}
	}
	return o
}

func (w worker) inspect(rel string, data []byte) fileOutcome {
	if detectors.IgnoresFile(data) {
		return fileOutcome{skipped: true, reason: "ignore-file directive"}
	}
	if looksBinary(data) || looksNonTextMIME(rel, data) {
		return fileOutcome{skipped: true, reason: "binary"}
	}
	h := fastHash(data)
	if !w.cfg.NoCache && w.db.Entries[rel] == h {
		return fileOutcome{cached: true}
	}
	if w.cfg.DryRun {
		return fileOutcome{hash: h}
	}
	return fileOutcome{findings: detectors.RunAll(rel, data), hash: h}
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return fs[i].Detector < fs[j].Detector
	})
}

func filterByConfidence(fs []types.Finding, min float64) []types.Finding {
	if min <= 0 {
		return fs
	}
	var out []types.Finding
	for _, f := range fs {
		if f.Confidence >= min {
			out = append(out, f)
		}
	}
	return out
}

func filterByIDs(fs []types.Finding, enable, disable string) []types.Finding {
	allowed := idSet(enable)
	blocked := idSet(disable)
	if len(allowed) == 0 && len(blocked) == 0 {
		return fs
	}
	var out []types.Finding
	for _, f := range fs {
		if len(allowed) > 0 && !allowed[f.Detector] {
			continue
		}
		if blocked[f.Detector] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func idSet(csv string) map[string]bool {
	set := map[string]bool{}
	for _, id := range strings.Split(csv, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
