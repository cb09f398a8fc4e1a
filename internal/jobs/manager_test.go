package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	interval time.Duration
	runs     atomic.Int32
	err      error
}

func (j *countingJob) Name() string            { return j.name }
func (j *countingJob) Interval() time.Duration { return j.interval }
func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestManager_RunsJobsUntilStopped(t *testing.T) {
	m := NewManager(context.Background())
	ok := &countingJob{name: "ok", interval: 5 * time.Millisecond}
	failing := &countingJob{name: "failing", interval: 5 * time.Millisecond, err: errors.New("boom")}
	m.Register(ok)
	m.Register(failing)
	m.Register(nil)
	assert.Equal(t, 2, m.Len())

	m.Start()
	require.Eventually(t, func() bool {
		return ok.runs.Load() >= 2 && failing.runs.Load() >= 2
	}, time.Second, time.Millisecond)

	m.Stop()
	m.Wait()

	after := ok.runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ok.runs.Load(), "no runs after stop")
}

func TestManager_StartIsIdempotentAndLateRegisterIgnored(t *testing.T) {
	m := NewManager(context.Background())
	job := &countingJob{name: "j", interval: time.Hour}
	m.Register(job)

	m.Start()
	m.Start()
	m.Register(&countingJob{name: "late", interval: time.Hour})
	assert.Equal(t, 1, m.Len())

	m.Stop()
	m.Wait()
	assert.Equal(t, int32(0), job.runs.Load(), "first run waits one interval")
}

func TestManager_StopsWithParentContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	m := NewManager(parent)
	m.Register(&countingJob{name: "j", interval: time.Millisecond})
	m.Start()

	cancel()

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("jobs did not stop after parent cancel")
	}
}
