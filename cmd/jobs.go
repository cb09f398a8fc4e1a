package main

import (
	"context"
	"fmt"
	"time"

	"studymanager/internal/jobs"
	"studymanager/pkg/idle"
	"studymanager/pkg/logger"
	"studymanager/pkg/metrics"
)

// activitySource is the part of the idle monitor the jobs read
type activitySource interface {
	Snapshot(ctx context.Context) (idle.Snapshot, error)
}

// activityStore persists the last-active mark
type activityStore interface {
	SaveLastActive(ctx context.Context, t time.Time) error
}

func (app *Application) initJobs() error {
	manager := jobs.NewManager(app.ctx)

	manager.Register(newIdleGaugeJob(app.config.Idle.CheckInterval, app.idleMonitor))
	if app.activityRepo != nil {
		manager.Register(newActivitySnapshotJob(app.config.Redis.SnapshotInterval, app.idleMonitor, app.activityRepo))
	}

	app.jobsManager = manager
	return nil
}

// saveActivity writes the monitor's current last-active mark to store
func saveActivity(ctx context.Context, source activitySource, store activityStore) error {
	snap, err := source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read idle state: %w", err)
	}
	return store.SaveLastActive(ctx, snap.LastActive)
}

// idleGaugeJob publishes the idle time as a gauge.
type idleGaugeJob struct {
	interval time.Duration
	source   activitySource
	now      func() time.Time
}

func newIdleGaugeJob(interval time.Duration, source activitySource) jobs.Job {
	return &idleGaugeJob{interval: interval, source: source, now: time.Now}
}

func (j *idleGaugeJob) Name() string {
	return "idle-gauge"
}

func (j *idleGaugeJob) Interval() time.Duration {
	return j.interval
}

func (j *idleGaugeJob) Run(ctx context.Context) error {
	snap, err := j.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	metrics.UpdateIdleSeconds(j.now().Sub(snap.LastActive))
	return nil
}

// activitySnapshotJob periodically persists the last-active mark.
type activitySnapshotJob struct {
	interval time.Duration
	source   activitySource
	store    activityStore
}

func newActivitySnapshotJob(interval time.Duration, source activitySource, store activityStore) jobs.Job {
	return &activitySnapshotJob{interval: interval, source: source, store: store}
}

func (j *activitySnapshotJob) Name() string {
	return "activity-snapshot"
}

func (j *activitySnapshotJob) Interval() time.Duration {
	return j.interval
}

func (j *activitySnapshotJob) Run(ctx context.Context) error {
	if err := saveActivity(ctx, j.source, j.store); err != nil {
		return err
	}
	logger.DebugCtx(ctx, "idle state persisted")
	return nil
}
