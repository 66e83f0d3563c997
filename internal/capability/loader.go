// Package capability manages lazily loaded external capabilities (vision,
// page rendering) behind an explicit Idle/Loading/Ready/Failed state machine.
// Concurrent callers waiting on the same load share one outcome.
package capability

import (
	"context"
	"sync"
	"time"

	apperrors "go-doc-inspector/internal/errors"
	"go-doc-inspector/internal/logger"
)

// State is the lifecycle state of a capability load
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// VisionFactory produces a Vision capability; called at most once per loader
type VisionFactory func(ctx context.Context) (Vision, error)

// VisionLoader guards a single async load of the vision capability.
// The first caller triggers the load; later callers poll the shared state
// until it resolves or their bounded wait expires.
type VisionLoader struct {
	mu      sync.Mutex
	state   State
	vision  Vision
	loadErr error

	factory      VisionFactory
	loadTimeout  time.Duration
	pollInterval time.Duration
}

// NewVisionLoader creates an idle loader. loadTimeout bounds how long a
// caller blocks on an in-progress load; pollInterval is the re-check period.
func NewVisionLoader(factory VisionFactory, loadTimeout, pollInterval time.Duration) *VisionLoader {
	if loadTimeout <= 0 {
		loadTimeout = 12 * time.Second
	}
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}
	return &VisionLoader{
		state:        StateIdle,
		factory:      factory,
		loadTimeout:  loadTimeout,
		pollInterval: pollInterval,
	}
}

// State returns the current lifecycle state
func (l *VisionLoader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Get returns the loaded vision capability, starting the load if idle and
// waiting (bounded) if a load is already in flight. Failed loads are sticky:
// every subsequent caller receives CapabilityUnavailable.
func (l *VisionLoader) Get(ctx context.Context) (Vision, error) {
	l.mu.Lock()
	switch l.state {
	case StateReady:
		v := l.vision
		l.mu.Unlock()
		return v, nil
	case StateFailed:
		err := l.loadErr
		l.mu.Unlock()
		return nil, apperrors.NewCapabilityUnavailableError("vision capability failed to load", err)
	case StateIdle:
		l.state = StateLoading
		l.mu.Unlock()
		go l.load()
	case StateLoading:
		l.mu.Unlock()
	}

	return l.await(ctx)
}

// load runs the factory exactly once and publishes the shared outcome
func (l *VisionLoader) load() {
	ctx, cancel := context.WithTimeout(context.Background(), l.loadTimeout)
	defer cancel()

	vision, err := l.factory(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.state = StateFailed
		l.loadErr = err
		logger.WithError(err).Error("Vision capability load failed")
		return
	}
	l.state = StateReady
	l.vision = vision
	logger.Debug("Vision capability ready")
}

// await polls the shared state until it resolves or the bounded wait expires
func (l *VisionLoader) await(ctx context.Context) (Vision, error) {
	deadline := time.NewTimer(l.loadTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		l.mu.Lock()
		state, vision, loadErr := l.state, l.vision, l.loadErr
		l.mu.Unlock()

		switch state {
		case StateReady:
			return vision, nil
		case StateFailed:
			return nil, apperrors.NewCapabilityUnavailableError("vision capability failed to load", loadErr)
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.NewCapabilityTimeoutError("wait for vision capability canceled", ctx.Err())
		case <-deadline.C:
			return nil, apperrors.NewCapabilityTimeoutError("timed out waiting for vision capability", nil)
		case <-ticker.C:
		}
	}
}
