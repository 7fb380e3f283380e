package hwseed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// defaultTimeout bounds each persistence round trip.
const defaultTimeout = 5 * time.Second

// EntropySource supplies the combined hardware seed used when a record is
// created for the first time.
type EntropySource interface {
	HardwareSeed(ctx context.Context) (uint32, error)
}

// FixedEntropy is an [EntropySource] that always returns its own value.
type FixedEntropy uint32

// HardwareSeed returns f.
func (f FixedEntropy) HardwareSeed(context.Context) (uint32, error) {
	return uint32(f), nil
}

// snapshot is an immutable view of the record with its derived component
// seeds. A new snapshot is published for every mutation.
type snapshot struct {
	record     Record
	components [componentCount]uint32
}

// Seeder owns one seed record and derives component seeds and identity
// values from it.
//
// Configure a Seeder with the With* methods before first use. After that all
// methods are safe for concurrent use: mutations are serialized by a mutex and
// readers load an atomically published snapshot without locking.
type Seeder struct {
	store   Store
	entropy EntropySource
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
	timeout time.Duration
	strict  bool

	mu             sync.Mutex
	sessionCounter uint32
	unreadable     bool // initial load failed; the persisted record was never seen
	state          atomic.Pointer[snapshot]
}

// New creates a Seeder backed by a [MemoryStore] and [HardwareEntropy].
func New() *Seeder {
	return &Seeder{
		store:   NewMemoryStore(),
		entropy: NewHardwareEntropy(),
		now:     time.Now,
		timeout: defaultTimeout,
	}
}

// WithStore sets the persistence backend.
func (s *Seeder) WithStore(store Store) *Seeder {
	s.store = store

	return s
}

// WithEntropy sets the source of the hardware seed for new records.
func (s *Seeder) WithEntropy(source EntropySource) *Seeder {
	s.entropy = source

	return s
}

// WithLogger sets an optional [*slog.Logger]. A nil logger (the default)
// disables logging.
func (s *Seeder) WithLogger(logger *slog.Logger) *Seeder {
	s.logger = logger

	return s
}

// WithMetrics sets the Prometheus collectors updated by the seeder.
func (s *Seeder) WithMetrics(m *Metrics) *Seeder {
	s.metrics = m

	return s
}

// WithClock replaces [time.Now], the source of creation time and session
// seeds.
func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now

	return s
}

// WithTimeout bounds every store operation. Non-positive values restore the
// default of five seconds.
func (s *Seeder) WithTimeout(d time.Duration) *Seeder {
	if d <= 0 {
		d = defaultTimeout
	}
	s.timeout = d

	return s
}

// WithStrictState makes [Seeder.SetUserSeed] return [ErrInvalidState] when
// called before [Seeder.Initialize] instead of initializing implicitly.
func (s *Seeder) WithStrictState() *Seeder {
	s.strict = true

	return s
}

// Initialize loads the persisted record, or creates one when none exists or
// the stored bytes are corrupt, increments the boot count and persists the
// result.
//
// Only the first call does any work; concurrent callers wait for it and
// later callers return immediately. When the store cannot be read or written
// the seeder still becomes initialized with an in-memory record and the
// returned error satisfies errors.Is(err, ErrInitialization).
func (s *Seeder) Initialize(ctx context.Context) error {
	if s.state.Load() != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Load() != nil {
		return nil
	}

	return s.initializeLocked(ctx)
}

// initializeLocked performs the load-or-create sequence. s.mu must be held.
func (s *Seeder) initializeLocked(ctx context.Context) error {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	var initErr error
	outcome := outcomeLoaded

	rec, err := s.load(ctx)
	switch {
	case err == nil:
		if rec.BootCount < math.MaxUint32 {
			rec.BootCount++
		}
	case errors.Is(err, ErrRecordNotFound):
		s.logInfo("no seed record found, creating one")
		rec = s.freshRecord(ctx)
		outcome = outcomeCreated
	case errors.Is(err, ErrCorruptRecord):
		s.logWarn("discarding unreadable seed record", "error", err)
		rec = s.freshRecord(ctx)
		outcome = outcomeCreated
	default:
		s.logWarn("seed record unavailable, using in-memory record", "error", err)
		rec = s.freshRecord(ctx)
		outcome = outcomeFallback
		initErr = &InitError{Op: "load", Err: err}
		s.unreadable = true
	}

	if outcome != outcomeFallback {
		if err := s.save(ctx, rec); err != nil {
			s.logWarn("persisting seed record failed, continuing in memory", "error", err)
			outcome = outcomeFallback
			initErr = &InitError{Op: "save", Err: err}
		}
	}

	s.publish(rec)
	s.metrics.observeInit(outcome, rec.BootCount)
	s.logInfo("seed system initialized",
		"outcome", outcome,
		"boot_count", rec.BootCount,
		"mix_version", MixVersion,
	)

	return initErr
}

// Cleanup closes the store if it implements [io.Closer] and detaches it.
// The in-memory record stays readable; later overrides are no longer
// persisted. The persisted copy is left untouched.
func (s *Seeder) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logWarn("closing seed store failed", "backend", s.store.Backend(), "error", err)
		}
	}
	s.store = nil
	s.logDebug("seed system cleaned up")
}

// IsInitialized reports whether a record has been loaded or created.
func (s *Seeder) IsInitialized() bool {
	snap := s.state.Load()

	return snap != nil && snap.record.IsInitialized
}

// SetUserSeed replaces the master seed and republishes every component seed
// before returning. The hardware seed is left unchanged.
//
// An uninitialized seeder is initialized first, unless strict mode is
// enabled, in which case [ErrInvalidState] is returned. A persistence failure
// is returned as a [*StoreError]; the new master seed is in effect regardless.
//
// If initialization could not read the store, the stored record is read again
// first. When it is readable the override is merged into it, adopting its
// hardware seed, creation time and boot count. When it is still unreadable
// nothing is saved, so an in-memory record never replaces a persisted one.
func (s *Seeder) SetUserSeed(ctx context.Context, seed uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Load() == nil {
		if s.strict {
			return fmt.Errorf("set user seed: %w", ErrInvalidState)
		}
		s.logDebug("set user seed before initialization, initializing")
		if err := s.initializeLocked(ctx); err != nil {
			s.logWarn("implicit initialization degraded", "error", err)
		}
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	rec := s.state.Load().record
	var reloadErr error
	if s.unreadable {
		rec, reloadErr = s.reload(ctx, rec)
	}

	rec.MasterSeed = seed
	s.publish(rec)
	s.metrics.observeOverride()
	s.logInfo("master seed overridden")

	if reloadErr != nil {
		s.logWarn("seed record still unreadable, override kept in memory", "error", reloadErr)
		return fmt.Errorf("set user seed not persisted: %w", reloadErr)
	}

	return s.save(ctx, rec)
}

// reload retries the load that failed during initialization and returns the
// record an override should be applied to. An error means the store is still
// unreadable and cur must not be saved. s.mu must be held.
func (s *Seeder) reload(ctx context.Context, cur Record) (Record, error) {
	stored, err := s.load(ctx)
	switch {
	case err == nil:
		if stored.BootCount < math.MaxUint32 {
			stored.BootCount++
		}
		stored.SessionSeed = cur.SessionSeed
		s.unreadable = false
		s.logInfo("seed record readable again, merging override", "boot_count", stored.BootCount)

		return stored, nil
	case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrCorruptRecord):
		s.unreadable = false

		return cur, nil
	default:
		return cur, err
	}
}

// RegenerateSessionSeed draws a new session seed from the clock and an
// internal counter and returns it. Master, hardware and component seeds are
// unchanged. The session seed is not persisted.
func (s *Seeder) RegenerateSessionSeed() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state.Load()
	if snap == nil {
		if err := s.initializeLocked(context.Background()); err != nil {
			s.logWarn("implicit initialization degraded", "error", err)
		}
		snap = s.state.Load()
	}

	next := *snap
	next.record.SessionSeed = s.nextSessionSeed(snap.record.SessionSeed)
	s.state.Store(&next)
	s.metrics.observeRotation()
	s.logDebug("session seed regenerated")

	return next.record.SessionSeed
}

// Record returns a copy of the current record.
func (s *Seeder) Record() Record {
	return s.current().record
}

// MasterSeed returns the current master seed.
func (s *Seeder) MasterSeed() uint32 { return s.current().record.MasterSeed }

// SessionSeed returns the current session seed.
func (s *Seeder) SessionSeed() uint32 { return s.current().record.SessionSeed }

// HardwareSeed returns the hardware seed.
func (s *Seeder) HardwareSeed() uint32 { return s.current().record.HardwareSeed }

// ComponentSeed returns the derived seed of component c. Unknown components
// are derived with a zero tag.
func (s *Seeder) ComponentSeed(c Component) uint32 {
	snap := s.current()
	if !c.valid() {
		return DeriveComponentSeed(snap.record.MasterSeed, snap.record.HardwareSeed, c)
	}

	return snap.components[c]
}

// CPUSeed returns the CPU component seed.
func (s *Seeder) CPUSeed() uint32 { return s.ComponentSeed(CPU) }

// GPUSeed returns the GPU component seed.
func (s *Seeder) GPUSeed() uint32 { return s.ComponentSeed(GPU) }

// MotherboardSeed returns the motherboard component seed.
func (s *Seeder) MotherboardSeed() uint32 { return s.ComponentSeed(Motherboard) }

// MemorySeed returns the memory component seed.
func (s *Seeder) MemorySeed() uint32 { return s.ComponentSeed(Memory) }

// DiskSeed returns the disk component seed.
func (s *Seeder) DiskSeed() uint32 { return s.ComponentSeed(Disk) }

// MonitorSeed returns the monitor component seed.
func (s *Seeder) MonitorSeed() uint32 { return s.ComponentSeed(Monitor) }

// NetworkSeed returns the network component seed.
func (s *Seeder) NetworkSeed() uint32 { return s.ComponentSeed(Network) }

// Value returns a value in [minVal, maxVal] keyed by the seed of c.
func (s *Seeder) Value(c Component, minVal, maxVal uint32) uint32 {
	return GenerateDeterministicValue(s.ComponentSeed(c), minVal, maxVal)
}

// Serial returns an n-character serial for c drawn from charset.
func (s *Seeder) Serial(c Component, n int, charset string) string {
	return GenerateSerial(s.ComponentSeed(c), n, charset)
}

// MAC returns the locally administered MAC address of c.
func (s *Seeder) MAC(c Component) MAC {
	return GenerateMacAddress(s.ComponentSeed(c))
}

// UUID returns the version 4 shaped UUID of c.
func (s *Seeder) UUID(c Component) uuid.UUID {
	return GenerateUuid(s.ComponentSeed(c))
}

// current returns the published snapshot, initializing on first use.
func (s *Seeder) current() *snapshot {
	if snap := s.state.Load(); snap != nil {
		return snap
	}

	if err := s.Initialize(context.Background()); err != nil {
		s.logWarn("implicit initialization degraded", "error", err)
	}

	return s.state.Load()
}

// publish derives the component seeds of rec and swaps in a new snapshot.
func (s *Seeder) publish(rec Record) {
	rec.IsInitialized = true
	s.state.Store(&snapshot{
		record:     rec,
		components: componentSeeds(rec.MasterSeed, rec.HardwareSeed),
	})
}

// freshRecord builds a first-boot record. s.mu must be held.
func (s *Seeder) freshRecord(ctx context.Context) Record {
	now := s.now()
	ticks := timeToTicks(now)

	var hardware uint32
	var err error
	if s.entropy != nil {
		hardware, err = s.entropy.HardwareSeed(ctx)
	} else {
		err = ErrNoIdentifiers
	}
	if err != nil {
		s.logWarn("hardware entropy unavailable, deriving from clock", "error", err)
		hardware = Mix32(uint32(ticks) ^ rotl32(uint32(uint64(ticks)>>32), 11))
	}

	return Record{
		MasterSeed:    Mix32(uint32(ticks) ^ rotl32(uint32(uint64(ticks)>>32), 7) ^ hardware),
		SessionSeed:   s.nextSessionSeed(0),
		HardwareSeed:  hardware,
		CreationTime:  ticks,
		BootCount:     1,
		IsInitialized: true,
	}
}

// nextSessionSeed returns a session seed different from prev. s.mu must be held.
func (s *Seeder) nextSessionSeed(prev uint32) uint32 {
	s.sessionCounter++
	ticks := uint64(timeToTicks(s.now()))

	seed := Mix32(uint32(ticks) ^ uint32(ticks>>32) ^ s.sessionCounter*goldenGamma)
	if seed == prev {
		seed = Mix32(seed + goldenGamma)
	}

	return seed
}

// load reads and decodes the persisted record. s.mu must be held.
func (s *Seeder) load(ctx context.Context) (Record, error) {
	if s.store == nil {
		return Record{}, ErrRecordNotFound
	}

	data, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return Record{}, err
		}
		s.metrics.observeStoreError(s.store.Backend(), "load")

		return Record{}, &StoreError{Backend: s.store.Backend(), Op: "load", Err: err}
	}

	var rec Record
	if err := rec.UnmarshalBinary(data); err != nil {
		return Record{}, err
	}
	if !rec.IsInitialized {
		return Record{}, fmt.Errorf("%w: record not marked initialized", ErrCorruptRecord)
	}

	s.logDebug("seed record loaded", "backend", s.store.Backend(), "boot_count", rec.BootCount)

	return rec, nil
}

// save encodes and persists rec. s.mu must be held.
func (s *Seeder) save(ctx context.Context, rec Record) error {
	if s.store == nil {
		s.logDebug("no store attached, record kept in memory")
		return nil
	}

	data, err := rec.MarshalBinary()
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, data); err != nil {
		s.metrics.observeStoreError(s.store.Backend(), "save")

		return &StoreError{Backend: s.store.Backend(), Op: "save", Err: err}
	}

	s.logDebug("seed record saved", "backend", s.store.Backend())

	return nil
}

func (s *Seeder) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithTimeout(ctx, s.timeout)
}

// logDebug logs at debug level if a logger is configured.
func (s *Seeder) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// logInfo logs at info level if a logger is configured.
func (s *Seeder) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// logWarn logs at warn level if a logger is configured.
func (s *Seeder) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
