package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/bombrisk"
	"github.com/aretw0/bombrisk/internal/logging"
	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates widget access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.GaugeStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker     ports.DistributedLocker // Optional distributed locker
	lockTTL    time.Duration
	widgetOpts []bombrisk.Option
	newID      func() string
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithWidgetOptions sets the options every created or restored widget is built with
// (extra methods, hooks, texts, logger).
func WithWidgetOptions(opts ...bombrisk.Option) Option {
	return func(m *Manager) {
		m.widgetOpts = append(m.widgetOpts, opts...)
	}
}

// WithIDGenerator overrides the UUID generator for new widget ids.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new Manager with the given snapshot store.
func NewManager(store ports.GaugeStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		newID:   uuid.NewString,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Create builds and initializes a widget from options and stores it under a new id.
func (m *Manager) Create(ctx context.Context, options map[string]any) (string, *bombrisk.Widget, error) {
	id := m.newID()
	// Concat copies: widgetOpts is shared by concurrent calls.
	w, err := bombrisk.New(slices.Concat(m.widgetOpts, []bombrisk.Option{bombrisk.WithID(id)})...)
	if err != nil {
		return "", nil, err
	}
	if err := w.Init(options); err != nil {
		return "", nil, err
	}

	err = m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.save(ctx, id, w)
	})
	if err != nil {
		return "", nil, err
	}
	m.logger.Debug("widget created", "widget_id", id, "method", w.Config().Method)
	return id, w, nil
}

// Get restores a widget for reading. Changes made to it are not persisted.
func (m *Manager) Get(ctx context.Context, id string) (*bombrisk.Widget, error) {
	var w *bombrisk.Widget
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		w, err = m.load(ctx, id)
		return err
	})
	return w, err
}

// Update restores a widget, applies fn and persists the result atomically.
// A widget destroyed by fn is removed from the store.
func (m *Manager) Update(ctx context.Context, id string, fn func(*bombrisk.Widget) error) (*bombrisk.Widget, error) {
	var w *bombrisk.Widget
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		w, err = m.load(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(w); err != nil {
			return err
		}
		return m.save(ctx, id, w)
	})
	return w, err
}

// Delete removes the widget from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Methods lists the method names widgets built by this manager can use.
func (m *Manager) Methods() ([]string, error) {
	w, err := bombrisk.New(m.widgetOpts...)
	if err != nil {
		return nil, err
	}
	return w.Methods(), nil
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.GaugeStore {
	return m.store
}

func (m *Manager) load(ctx context.Context, id string) (*bombrisk.Widget, error) {
	snap, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return bombrisk.Restore(snap, m.widgetOpts...)
}

func (m *Manager) save(ctx context.Context, id string, w *bombrisk.Widget) error {
	snap, err := w.Snapshot()
	if errors.Is(err, domain.ErrDestroyed) {
		return m.store.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	snap.ID = id
	if err := m.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save widget %s: %w", id, err)
	}
	return nil
}

// WithLock executes a function while holding the lock for the widget.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"widget_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
