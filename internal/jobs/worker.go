package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sjperalta/prestamos-api/pkg/logger"
)

// ErrUnknownJob is returned by Trigger for a name that was never registered
var ErrUnknownJob = errors.New("unknown job")

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued jobs on a fixed pool of goroutines and named jobs on
// tickers. Named jobs can also be triggered on demand.
type Worker struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	queue  chan namedJob

	mu       sync.RWMutex
	stats    WorkerStats
	registry map[string]*registered
	closed   bool
}

type namedJob struct {
	name string
	job  Job
}

type registered struct {
	job  Job
	info ScheduleInfo
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	Goroutines    int   `json:"goroutines"`
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
}

// ScheduleInfo describes a named job and its last run
type ScheduleInfo struct {
	Name         string        `json:"name"`
	Interval     time.Duration `json:"interval"`
	Runs         int64         `json:"runs"`
	LastRun      *time.Time    `json:"last_run,omitempty"`
	LastDuration time.Duration `json:"last_duration"`
	LastError    string        `json:"last_error,omitempty"`
}

// NewWorker creates a worker with n queue processors
func NewWorker(n int) *Worker {
	if n < 1 {
		n = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		ctx:      ctx,
		cancel:   cancel,
		queue:    make(chan namedJob, 100),
		registry: make(map[string]*registered),
	}
	w.stats.Goroutines = n

	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the queue. A full queue runs the job on the caller's goroutine.
func (w *Worker) Enqueue(name string, job Job) {
	w.mu.RLock()
	closed := w.closed
	w.mu.RUnlock()
	if closed {
		logger.Warn("[Worker] Dropping job after shutdown", "job", name)
		return
	}

	select {
	case w.queue <- namedJob{name: name, job: job}:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously", "job", name)
		w.run(name, job)
	}
}

// Register makes a named job available to Trigger without scheduling it
func (w *Worker) Register(name string, job Job) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.registry[name] = &registered{job: job, info: ScheduleInfo{Name: name}}
}

// ScheduleEvery registers a named job and runs it every interval. The first
// run happens after one interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.mu.Lock()
	w.registry[name] = &registered{job: job, info: ScheduleInfo{Name: name, Interval: interval}}
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run(name, job)
			}
		}
	}()
}

// Trigger queues an immediate run of a registered job
func (w *Worker) Trigger(name string) error {
	w.mu.RLock()
	reg, ok := w.registry[name]
	w.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	w.Enqueue(name, reg.job)
	return nil
}

func (w *Worker) process(id int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case nj, ok := <-w.queue:
			if !ok {
				return
			}
			logger.Debug("[Worker] Picked job", "worker", id, "job", nj.name)
			w.run(nj.name, nj.job)
		}
	}
}

// run executes a job, recovering panics and recording the outcome
func (w *Worker) run(name string, job Job) {
	w.trackStart()
	start := time.Now()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = job(w.ctx)
	}()

	elapsed := time.Since(start)
	w.trackEnd(name, start, elapsed, err)

	if err != nil {
		logger.Error("[Worker] Job failed", "job", name, "elapsed", elapsed, "error", err)
		return
	}
	logger.Info("[Worker] Job completed", "job", name, "elapsed", elapsed)
}

// Shutdown stops the schedulers and processors and waits for running jobs
func (w *Worker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

// Schedules lists the named jobs sorted by name
func (w *Worker) Schedules() []ScheduleInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	infos := make([]ScheduleInfo, 0, len(w.registry))
	for _, reg := range w.registry {
		infos = append(infos, reg.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (w *Worker) trackStart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.ActiveJobs++
}

// trackEnd counts every finished job in CompletedJobs; FailedJobs is the failing subset
func (w *Worker) trackEnd(name string, start time.Time, elapsed time.Duration, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
	if err != nil {
		w.stats.FailedJobs++
	}

	if reg, ok := w.registry[name]; ok {
		reg.info.Runs++
		reg.info.LastRun = &start
		reg.info.LastDuration = elapsed
		reg.info.LastError = ""
		if err != nil {
			reg.info.LastError = err.Error()
		}
	}
}
