package persistence

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/fbsn11/team-management-app/internal/platform/logging"
	"github.com/fbsn11/team-management-app/internal/platform/resilience"
)

const (
	defaultMirrorWorkers = 4
	defaultMirrorTimeout = 5 * time.Second
)

type MirrorConfig struct {
	Workers int
	Timeout time.Duration
	Breaker resilience.CircuitBreakerConfig
}

func DefaultMirrorConfig() MirrorConfig {
	return MirrorConfig{
		Workers: defaultMirrorWorkers,
		Timeout: defaultMirrorTimeout,
		Breaker: resilience.DefaultCircuitBreakerConfig(),
	}
}

// MirrorStats counts what happened to scheduled saves.
type MirrorStats struct {
	Scheduled uint64
	Written   uint64
	Coalesced uint64
	Failed    uint64
}

type pendingWrite struct {
	seq     uint64
	payload []byte
}

// Mirror writes documents to a KVStore in the background.
//
// Save never blocks on the backend and never retries. Writes for one key
// run one at a time; a save arriving while an earlier one is still queued
// replaces it, so the last save wins.
type Mirror struct {
	store   KVStore
	timeout time.Duration
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
	pool    *ants.Pool

	mu       sync.Mutex
	pending  map[string]*pendingWrite
	draining map[string]bool
	active   int
	idle     chan struct{} // closed when active drops to zero
	closed   bool

	seq       atomic.Uint64
	scheduled atomic.Uint64
	written   atomic.Uint64
	coalesced atomic.Uint64
	failed    atomic.Uint64
}

func NewMirror(store KVStore, cfg MirrorConfig, logger *logging.Logger) (*Mirror, error) {
	if store == nil {
		return nil, fmt.Errorf("mirror store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultMirrorWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultMirrorTimeout
	}

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("create mirror worker pool: %w", err)
	}

	logger = logger.Named("mirror")
	next := cfg.Breaker.OnStateChange
	cfg.Breaker.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("mirror circuit state changed", "from", string(from), "to", string(to))
		if next != nil {
			next(from, to)
		}
	}

	return &Mirror{
		store:    store,
		timeout:  cfg.Timeout,
		logger:   logger,
		breaker:  resilience.NewCircuitBreaker(cfg.Breaker),
		pool:     pool,
		pending:  make(map[string]*pendingWrite),
		draining: make(map[string]bool),
	}, nil
}

// Save encodes v now and writes it under key in the background.
func (m *Mirror) Save(key string, v any) {
	payload, err := Encode(v)
	if err != nil {
		m.failed.Add(1)
		m.logger.Error("mirror save dropped", "key", key, "error", fmt.Errorf("%w: %v", ErrPersistence, err))
		return
	}
	m.SaveRaw(key, payload)
}

// SaveRaw schedules an already encoded payload. The slice must not be
// modified by the caller afterwards.
func (m *Mirror) SaveRaw(key string, payload []byte) {
	key = strings.TrimSpace(key)
	w := &pendingWrite{seq: m.seq.Add(1), payload: payload}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.failed.Add(1)
		m.logger.Warn("mirror save after close", "key", key, "seq", w.seq)
		return
	}
	m.scheduled.Add(1)
	if _, queued := m.pending[key]; queued {
		m.coalesced.Add(1)
	}
	m.pending[key] = w
	start := !m.draining[key]
	if start {
		m.draining[key] = true
		m.beginLocked()
	}
	m.mu.Unlock()

	if !start {
		return
	}
	if err := m.pool.Submit(func() { m.drain(key) }); err != nil {
		m.mu.Lock()
		delete(m.draining, key)
		delete(m.pending, key)
		m.endLocked()
		m.mu.Unlock()
		m.failed.Add(1)
		m.logger.Error("mirror submit failed", "key", key, "seq", w.seq, "error", err)
	}
}

func (m *Mirror) beginLocked() {
	if m.active == 0 {
		m.idle = make(chan struct{})
	}
	m.active++
}

func (m *Mirror) endLocked() {
	m.active--
	if m.active == 0 {
		close(m.idle)
		m.idle = nil
	}
}

func (m *Mirror) drain(key string) {
	for {
		m.mu.Lock()
		w := m.pending[key]
		delete(m.pending, key)
		if w == nil {
			delete(m.draining, key)
			m.endLocked()
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()

		m.write(key, w)
	}
}

func (m *Mirror) write(key string, w *pendingWrite) {
	var catcher panics.Catcher
	var err error
	catcher.Try(func() {
		err = m.breaker.Execute(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
			defer cancel()
			return m.store.Save(ctx, key, w.payload)
		})
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}

	if err != nil {
		m.failed.Add(1)
		m.logger.Error("mirror write failed",
			"key", key,
			"seq", w.seq,
			"bytes", len(w.payload),
			"breaker", string(m.breaker.State()),
			"error", fmt.Errorf("%w: %v", ErrPersistence, err),
		)
		return
	}
	m.written.Add(1)
	m.logger.Debug("mirror write done", "key", key, "seq", w.seq, "bytes", len(w.payload))
}

// Flush waits until the mirror has no write queued or running, or ctx is
// done. It is safe to call while other goroutines keep saving; saves that
// land before the queue empties are waited for too.
func (m *Mirror) Flush(ctx context.Context) error {
	m.mu.Lock()
	idle := m.idle
	m.mu.Unlock()
	if idle == nil {
		return nil
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush mirror: %w", ctx.Err())
	}
}

// Close flushes and stops the worker pool. Later saves are dropped.
func (m *Mirror) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	err := m.Flush(ctx)
	m.pool.Release()
	return err
}

func (m *Mirror) Stats() MirrorStats {
	return MirrorStats{
		Scheduled: m.scheduled.Load(),
		Written:   m.written.Load(),
		Coalesced: m.coalesced.Load(),
		Failed:    m.failed.Load(),
	}
}
