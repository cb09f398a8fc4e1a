package idle

import (
	"context"
	"testing"
	"time"

	"studymanager/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(prev) })
	return logs
}

func runMonitor(t *testing.T, m *Monitor) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go m.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-m.done
	})
	return ctx
}

func TestNewMonitor_Defaults(t *testing.T) {
	before := time.Now()
	m := NewMonitor(Options{})

	assert.Equal(t, 1200*time.Second, m.threshold)
	assert.Equal(t, 10*time.Second, m.checkInterval)
	assert.Equal(t, 60*time.Second, m.sleepDuration)
	assert.Equal(t, StateActive, m.state)
	assert.False(t, m.lastActive.Before(before))
}

func TestCheck_SleepsPastThreshold(t *testing.T) {
	logs := observeLogs(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(Options{LastActive: now.Add(-1201 * time.Second), Now: func() time.Time { return now }})

	assert.True(t, m.check(context.Background(), now))
	assert.Equal(t, StateAsleep, m.state)
	assert.Equal(t, 1, logs.FilterMessageSnippet("going to sleep").Len())
}

func TestCheck_StaysActiveWithinThreshold(t *testing.T) {
	logs := observeLogs(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(Options{LastActive: now.Add(-1199 * time.Second), Now: func() time.Time { return now }})

	assert.False(t, m.check(context.Background(), now))
	assert.Equal(t, StateActive, m.state)
	assert.Equal(t, 0, logs.FilterMessageSnippet("going to sleep").Len())
}

func TestCheck_ExactlyAtThresholdDoesNotSleep(t *testing.T) {
	observeLogs(t)
	now := time.Now()
	m := NewMonitor(Options{LastActive: now.Add(-1200 * time.Second)})

	assert.False(t, m.check(context.Background(), now))
}

func TestRecord_KeepsLatest(t *testing.T) {
	base := time.Now()
	m := NewMonitor(Options{LastActive: base})

	m.record(base.Add(5 * time.Second))
	m.record(base.Add(2 * time.Second))
	assert.Equal(t, base.Add(5*time.Second), m.lastActive)
}

func TestRun_TouchUpdatesSnapshot(t *testing.T) {
	observeLogs(t)
	start := time.Now().Add(-time.Hour)
	m := NewMonitor(Options{LastActive: start, Threshold: 2 * time.Hour, CheckInterval: time.Hour})

	ctx := runMonitor(t, m)

	m.Touch()

	require.Eventually(t, func() bool {
		snap, err := m.Snapshot(ctx)
		return err == nil && snap.LastActive.After(start)
	}, time.Second, 5*time.Millisecond)

	snap, err := m.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateActive, snap.State)
}

func TestRun_SleepAndWake(t *testing.T) {
	logs := observeLogs(t)
	m := NewMonitor(Options{
		LastActive:    time.Now().Add(-time.Minute),
		Threshold:     time.Second,
		CheckInterval: 10 * time.Millisecond,
		SleepDuration: 200 * time.Millisecond,
	})

	ctx := runMonitor(t, m)

	require.Eventually(t, func() bool {
		return logs.FilterMessageSnippet("going to sleep").Len() >= 1
	}, time.Second, 5*time.Millisecond)

	snap, err := m.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAsleep, snap.State)

	// Touches are still accepted while asleep.
	m.Touch()

	require.Eventually(t, func() bool {
		return logs.FilterMessageSnippet("Server is awake").Len() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestRun_TouchStopsRepeatedSleep(t *testing.T) {
	logs := observeLogs(t)
	seeded := time.Now().Add(-time.Minute)
	m := NewMonitor(Options{
		Threshold:     time.Second,
		CheckInterval: 10 * time.Millisecond,
		SleepDuration: 30 * time.Millisecond,
		LastActive:    seeded,
	})

	ctx := runMonitor(t, m)

	// Without a touch the monitor keeps going back to sleep after every wake.
	require.Eventually(t, func() bool {
		return logs.FilterMessageSnippet("going to sleep").Len() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	m.Touch()
	require.Eventually(t, func() bool {
		snap, err := m.Snapshot(ctx)
		return err == nil && snap.LastActive.After(seeded)
	}, time.Second, 5*time.Millisecond)

	sleeps := logs.FilterMessageSnippet("going to sleep").Len()
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, sleeps, logs.FilterMessageSnippet("going to sleep").Len())
}

func TestSnapshot_AfterStop(t *testing.T) {
	observeLogs(t)
	m := NewMonitor(Options{CheckInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	_, err := m.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrStopped)
}

func TestSnapshot_ContextCancelledWithoutRun(t *testing.T) {
	m := NewMonitor(Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Snapshot(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
