package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/aml-lists-api/pkg/logger"
)

// ErrUnknownJob is returned when triggering a job that was never registered
var ErrUnknownJob = errors.New("unknown job")

// Job represents a background task
type Job func(ctx context.Context) error

type namedJob struct {
	name string
	run  Job
}

// Worker runs registered jobs on a schedule or on demand
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan namedJob
	workers int

	jobsMu sync.RWMutex
	jobs   map[string]Job

	statsMu sync.RWMutex
	stats   WorkerStats
}

// JobStatus describes the last run of a named job
type JobStatus struct {
	Runs      int64     `json:"runs"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int                  `json:"active_jobs"`
	CompletedJobs int64                `json:"completed_jobs"`
	FailedJobs    int64                `json:"failed_jobs"`
	QueueLength   int                  `json:"queue_length"`
	Workers       int                  `json:"workers"`
	Jobs          map[string]JobStatus `json:"jobs"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:     ctx,
		cancel:  cancel,
		queue:   make(chan namedJob, 100),
		workers: numWorkers,
		jobs:    make(map[string]Job),
		stats:   WorkerStats{Jobs: make(map[string]JobStatus)},
	}

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Register makes a job available under name for scheduling and triggering
func (w *Worker) Register(name string, job Job) {
	w.jobsMu.Lock()
	defer w.jobsMu.Unlock()
	w.jobs[name] = job
}

func (w *Worker) lookup(name string) (Job, error) {
	w.jobsMu.RLock()
	defer w.jobsMu.RUnlock()
	job, ok := w.jobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return job, nil
}

// Trigger queues a registered job for immediate execution by the pool
func (w *Worker) Trigger(name string) error {
	job, err := w.lookup(name)
	if err != nil {
		return err
	}

	select {
	case w.queue <- namedJob{name: name, run: job}:
		return nil
	default:
		logger.Warn("[Worker] Queue full, running job synchronously", "job", name)
		w.run(namedJob{name: name, run: job})
		return nil
	}
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			logger.Debug("[Worker] Picked up job", "worker", workerID, "job", job.name)
			w.run(job)
		}
	}
}

// ScheduleEvery runs a registered job at fixed intervals. The first run
// happens after the interval, not at startup.
func (w *Worker) ScheduleEvery(name string, interval time.Duration) {
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
				job, err := w.lookup(name)
				if err != nil {
					logger.Error("[Scheduler] Scheduled job missing", "job", name)
					continue
				}
				w.run(namedJob{name: name, run: job})
			}
		}
	}()
}

func (w *Worker) run(job namedJob) {
	w.trackJobStart()
	start := time.Now()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = job.run(w.ctx)
	}()

	if err != nil {
		logger.Error("[Worker] Job failed", "job", job.name, "error", err)
	} else {
		logger.Info("[Worker] Job completed", "job", job.name, "duration", time.Since(start))
	}
	w.trackJobEnd(job.name, start, err)
}

// Shutdown gracefully stops all workers
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.Jobs = make(map[string]JobStatus, len(w.stats.Jobs))
	for name, status := range w.stats.Jobs {
		stats.Jobs[name] = status
	}
	stats.QueueLength = len(w.queue)
	stats.Workers = w.workers
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// CompletedJobs counts every finished run; FailedJobs is the failing subset
func (w *Worker) trackJobEnd(name string, start time.Time, err error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++

	status := w.stats.Jobs[name]
	status.Runs++
	status.LastRun = start
	status.LastError = ""
	if err != nil {
		w.stats.FailedJobs++
		status.LastError = err.Error()
	}
	w.stats.Jobs[name] = status
}
