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

func TestWorkerTrigger(t *testing.T) {
	w := NewWorker(2)
	defer w.Shutdown()

	var runs atomic.Int32
	w.Register("overdue", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	require.NoError(t, w.Trigger("overdue"))
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		infos := w.Schedules()
		return len(infos) == 1 && infos[0].Runs == 1
	}, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, w.Trigger("missing"), ErrUnknownJob)
}

func TestWorkerRecordsFailuresAndPanics(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	w.Register("failing", func(ctx context.Context) error { return errors.New("boom") })
	w.Register("panicking", func(ctx context.Context) error { panic("kaboom") })

	require.NoError(t, w.Trigger("failing"))
	require.NoError(t, w.Trigger("panicking"))

	require.Eventually(t, func() bool {
		stats := w.GetStats()
		return stats.CompletedJobs == 2 && stats.FailedJobs == 2 && stats.ActiveJobs == 0
	}, time.Second, 10*time.Millisecond)

	infos := w.Schedules()
	require.Len(t, infos, 2)
	assert.Equal(t, "boom", infos[0].LastError)
	assert.Contains(t, infos[1].LastError, "kaboom")
}

func TestWorkerScheduleEvery(t *testing.T) {
	w := NewWorker(1)

	var runs atomic.Int32
	w.ScheduleEvery("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	w.Shutdown()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())

	// enqueueing after shutdown is a no-op
	w.Enqueue("late", func(ctx context.Context) error {
		runs.Add(100)
		return nil
	})
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}
