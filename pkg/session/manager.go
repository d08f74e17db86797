package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// ErrInvalidRun marks a start request whose tape or head cannot form a configuration.
var ErrInvalidRun = errors.New("invalid run request")

// DefaultMaxSteps bounds a Start or Advance call that does not set its own budget.
const DefaultMaxSteps = 100000

// Observer receives per-machine hooks and run summaries (see observability.Metrics).
type Observer interface {
	Hooks(machine string) domain.LifecycleHooks
	ObserveRun(machine string, res runner.Result)
}

// StartRequest describes a new run.
type StartRequest struct {
	Machine string
	Tape    string
	// Head is the initial head index; nil selects the program default.
	Head *int
	// MaxSteps bounds this call; zero uses the manager default.
	MaxSteps int
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates run access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store    ports.RunStore
	programs *catalog.Registry

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker   ports.DistributedLocker
	lockTTL  time.Duration
	logger   *slog.Logger
	observer Observer
	maxSteps int
	newID    func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(m *Manager) {
		m.locker = locker
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager and the machines it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithObserver wires metrics into every machine the Manager runs.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// WithMaxSteps sets the default step budget per call.
func WithMaxSteps(n int) Option {
	return func(m *Manager) {
		m.maxSteps = n
	}
}

// WithIDGenerator replaces the UUID run ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new run Manager over a store and a program registry.
func NewManager(store ports.RunStore, programs *catalog.Registry, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		programs: programs,
		locks:    make(map[string]*lockEntry),
		lockTTL:  30 * time.Second,
		logger:   logging.NewNop(), // Default to no-op
		maxSteps: DefaultMaxSteps,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(runID) after unlocking.
func (m *Manager) acquire(runID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[runID]
	if !exists {
		entry = &lockEntry{}
		m.locks[runID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(runID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[runID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, runID)
	}
}

// Start creates a run, executes it until it halts or the budget is spent, and
// stores the resulting record.
//
// An undefined transition is stored on the record (Error) and also returned.
// Cancellation returns ctx.Err() after saving the partial run.
// A spent budget is not an error: the record is stored with Halted=false and
// can be resumed with Advance.
func (m *Manager) Start(ctx context.Context, req StartRequest) (*domain.RunRecord, error) {
	p, err := m.programs.Get(req.Machine)
	if err != nil {
		return nil, err
	}

	head := -1
	if req.Head != nil {
		head = *req.Head
	}
	mach, err := p.NewMachine(req.Tape, head, m.machineOptions(p.Name)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRun, err)
	}

	id := m.newID()
	var rec *domain.RunRecord
	err = m.WithLock(ctx, id, func(ctx context.Context) error {
		var runErr error
		rec, runErr = m.execute(ctx, id, p.Name, mach, 0, req.MaxSteps)
		return runErr
	})
	return rec, err
}

// Advance resumes a stored run for at most steps transitions (zero uses the
// manager default). Halted runs are returned unchanged.
func (m *Manager) Advance(ctx context.Context, runID string, steps int) (*domain.RunRecord, error) {
	var rec *domain.RunRecord
	err := m.WithLock(ctx, runID, func(ctx context.Context) error {
		prev, err := m.store.Load(ctx, runID)
		if err != nil {
			return err
		}
		if prev.Halted {
			rec = prev
			return nil
		}

		p, err := m.programs.Get(prev.Machine)
		if err != nil {
			return err
		}
		mach, err := p.Restore(prev, m.machineOptions(p.Name)...)
		if err != nil {
			return fmt.Errorf("failed to restore run %s: %w", runID, err)
		}

		var runErr error
		rec, runErr = m.execute(ctx, runID, p.Name, mach, prev.Steps, steps)
		return runErr
	})
	return rec, err
}

// execute runs mach under a budget and saves its record. The caller holds the lock.
func (m *Manager) execute(ctx context.Context, runID, name string, mach *catalog.Machine, priorSteps, budget int) (*domain.RunRecord, error) {
	if budget <= 0 {
		budget = m.maxSteps
	}

	res, runErr := runner.New(runner.WithMaxSteps(budget), runner.WithLogger(m.logger)).Run(ctx, mach)
	if m.observer != nil {
		m.observer.ObserveRun(name, res)
	}

	rec := mach.Record(runID)
	rec.Steps = priorSteps + res.Steps
	switch {
	case errors.Is(runErr, runner.ErrStepBudgetExhausted):
		runErr = nil
	case errors.Is(runErr, domain.ErrUndefinedTransition):
		rec.Error = runErr.Error()
	}

	// A canceled run is still saved so that it can be resumed.
	if err := m.store.Save(context.WithoutCancel(ctx), runID, rec); err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", runID, err)
	}
	m.logger.Info("run saved", "run_id", runID, "machine", name, "steps", rec.Steps, "halted", rec.Halted)
	return rec, runErr
}

func (m *Manager) machineOptions(name string) []machine.Option {
	opts := []machine.Option{
		machine.WithBlankGlyph(catalog.BlankGlyph),
		machine.WithLogger(m.logger),
	}
	if m.observer != nil {
		opts = append(opts, machine.WithLifecycleHooks(m.observer.Hooks(name)))
	}
	return opts
}

// Load retrieves an existing run from the store.
func (m *Manager) Load(ctx context.Context, runID string) (*domain.RunRecord, error) {
	var rec *domain.RunRecord
	err := m.WithLock(ctx, runID, func(ctx context.Context) error {
		var err error
		rec, err = m.store.Load(ctx, runID)
		return err
	})
	return rec, err
}

// Delete removes the run from the store.
func (m *Manager) Delete(ctx context.Context, runID string) error {
	return m.WithLock(ctx, runID, func(ctx context.Context) error {
		return m.store.Delete(ctx, runID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Programs returns the registry runs are started from.
func (m *Manager) Programs() *catalog.Registry {
	return m.programs
}

// WithLock executes a function while holding the lock for the run.
func (m *Manager) WithLock(ctx context.Context, runID string, fn func(context.Context) error) error {
	entry := m.acquire(runID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(runID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, runID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"run_id", runID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
