// Package idle tracks how long the service has gone without a root request
// and logs simulated sleep and wake transitions. It never gates requests.
package idle

import (
	"context"
	"errors"
	"time"

	"studymanager/pkg/config"
	"studymanager/pkg/logger"
	"studymanager/pkg/metrics"
)

// State is the logical monitor state
type State string

const (
	StateActive State = "active"
	StateAsleep State = "asleep"
)

// ErrStopped is returned by queries once Run has exited.
var ErrStopped = errors.New("idle monitor stopped")

const touchBuffer = 64

// Snapshot is a point-in-time view of the monitor state
type Snapshot struct {
	LastActive time.Time
	State      State
}

// Options configures a Monitor. Zero durations use the defaults.
type Options struct {
	Threshold     time.Duration
	CheckInterval time.Duration
	SleepDuration time.Duration
	// LastActive seeds the last-active mark, e.g. from a persisted value.
	// Zero means "now".
	LastActive time.Time
	Now        func() time.Time
}

// Monitor owns the last-active mark. Other goroutines reach it only through
// Touch and Snapshot, which are served by the Run loop.
type Monitor struct {
	threshold     time.Duration
	checkInterval time.Duration
	sleepDuration time.Duration
	now           func() time.Time

	touches chan time.Time
	queries chan chan Snapshot
	done    chan struct{}

	// owned by the Run goroutine
	lastActive time.Time
	state      State
}

// NewMonitor creates a monitor in the Active state
func NewMonitor(opts Options) *Monitor {
	m := &Monitor{
		threshold:     opts.Threshold,
		checkInterval: opts.CheckInterval,
		sleepDuration: opts.SleepDuration,
		now:           opts.Now,
		touches:       make(chan time.Time, touchBuffer),
		queries:       make(chan chan Snapshot),
		done:          make(chan struct{}),
		lastActive:    opts.LastActive,
		state:         StateActive,
	}
	if m.threshold <= 0 {
		m.threshold = config.DefaultIdleThreshold
	}
	if m.checkInterval <= 0 {
		m.checkInterval = config.DefaultIdleCheck
	}
	if m.sleepDuration <= 0 {
		m.sleepDuration = config.DefaultIdleSleep
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.lastActive.IsZero() {
		m.lastActive = m.now()
	}
	return m
}

// NewMonitorFromConfig creates a monitor from the idle configuration
func NewMonitorFromConfig(cfg *config.IdleConfig, lastActive time.Time) *Monitor {
	return NewMonitor(Options{
		Threshold:     cfg.Threshold,
		CheckInterval: cfg.CheckInterval,
		SleepDuration: cfg.SleepDuration,
		LastActive:    lastActive,
	})
}

// Touch records activity now. It never blocks; if the loop is far behind the
// event is dropped.
func (m *Monitor) Touch() {
	select {
	case m.touches <- m.now():
	default:
	}
}

// Snapshot asks the Run loop for its current state
func (m *Monitor) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case m.queries <- reply:
	case <-m.done:
		return Snapshot{}, ErrStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Run checks idle time every check interval until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) {
	defer close(m.done)

	logger.InfoCtx(ctx, "idle monitor started, threshold: %v, check interval: %v", m.threshold, m.checkInterval)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "idle monitor stopped")
			return
		case t := <-m.touches:
			m.record(t)
		case reply := <-m.queries:
			reply <- m.snapshot()
		case <-ticker.C:
			if !m.check(ctx, m.now()) {
				continue
			}
			if !m.hold(ctx) {
				logger.InfoCtx(ctx, "idle monitor stopped")
				return
			}
			m.wake(ctx)
			ticker.Reset(m.checkInterval)
		}
	}
}

// check moves Active to Asleep when the idle time exceeds the threshold
func (m *Monitor) check(ctx context.Context, now time.Time) bool {
	if m.state != StateActive {
		return false
	}
	if now.Sub(m.lastActive) <= m.threshold {
		return false
	}

	m.state = StateAsleep
	metrics.RecordIdleTransition(string(StateAsleep))
	logger.InfoCtx(ctx, "Server is going to sleep due to inactivity (idle for %v)", now.Sub(m.lastActive).Truncate(time.Second))
	return true
}

// hold blocks the loop for the sleep duration while still serving touches
// and queries. It returns false if ctx ends first.
func (m *Monitor) hold(ctx context.Context) bool {
	timer := time.NewTimer(m.sleepDuration)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case t := <-m.touches:
			m.record(t)
		case reply := <-m.queries:
			reply <- m.snapshot()
		case <-timer.C:
			return true
		}
	}
}

func (m *Monitor) wake(ctx context.Context) {
	m.state = StateActive
	metrics.RecordIdleTransition(string(StateActive))
	logger.InfoCtx(ctx, "Server is awake!")
}

func (m *Monitor) record(t time.Time) {
	if t.After(m.lastActive) {
		m.lastActive = t
	}
}

func (m *Monitor) snapshot() Snapshot {
	return Snapshot{LastActive: m.lastActive, State: m.state}
}
