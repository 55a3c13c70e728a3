package pool

import (
	"errors"
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"runtime/debug"
	"sync"
)

var Logger = logger.GetLogger("pool")

var (
	// ErrPoolClosed is returned by Execute once Shutdown has begun
	ErrPoolClosed = errors.New("pool is shut down")
	// ErrNilJob is returned by Execute for a nil job
	ErrNilJob = errors.New("job must not be nil")
)

var (
	jobsExecuted = metrics.NewCounter("ngram_pool_jobs_total")
	jobPanics    = metrics.NewCounter("ngram_pool_job_panics_total")
	jobsRejected = metrics.NewCounter("ngram_pool_rejected_total")
)

// Job is one independent unit of work
type Job func()

// Pool is a fixed size set of workers consuming jobs from one shared queue.
type Pool struct {
	size    int
	queue   *jobQueue[Job]
	workers sync.WaitGroup

	shutdownOnce sync.Once
}

// worker is a pool owned executor, identified by its index
type worker struct {
	id   int
	pool *Pool
}

// NewPool creates a pool and starts size workers.
//
// Usage:
//
//	p, err := pool.NewPool(16)
//	if err != nil {
//		return err
//	}
//	defer p.Shutdown()
//
//	if err := p.Execute(func() { ... }); err != nil {
//		// the pool is shut down
//	}
func NewPool(size int) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("invalid pool size %d: must be at least 1", size)
	}

	p := &Pool{
		size:  size,
		queue: newJobQueue[Job](),
	}

	p.workers.Add(size)
	for i := 0; i < size; i++ {
		w := &worker{id: i, pool: p}
		go w.loop()
	}

	Logger.Debugf("started pool with %d workers", size)
	return p, nil
}

// --------------------------------------------------------------------------
// Pool Methods
// --------------------------------------------------------------------------

// Execute hands a job to the pool for asynchronous execution. The job runs exactly
// once on exactly one worker. Once Shutdown has begun, ErrPoolClosed is returned and
// the job is not run.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (p *Pool) Execute(job Job) error {
	if job == nil {
		return ErrNilJob
	}
	if !p.queue.Push(&job) {
		jobsRejected.Inc()
		return ErrPoolClosed
	}
	return nil
}

// Shutdown stops accepting jobs, waits until every queued job was executed and all
// workers exited. It is idempotent; concurrent and repeated calls all block until
// the workers are gone. It must not be called from inside a job.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		Logger.Debugf("shutting down pool, %d jobs pending", p.queue.Len())
		p.queue.Close()
	})
	p.workers.Wait()
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.size
}

// Pending returns the approximate number of queued jobs not yet picked up by a worker
func (p *Pool) Pending() int {
	return p.queue.Len()
}

// --------------------------------------------------------------------------
// Worker
// --------------------------------------------------------------------------

// loop runs jobs until the queue is closed and drained
func (w *worker) loop() {
	defer w.pool.workers.Done()

	for job := range w.pool.queue.Recv() {
		w.run(*job)
	}

	Logger.Debugf("worker %d stopped", w.id)
}

// run executes a single job. A panicking job is recovered and logged so the
// worker keeps serving the queue.
func (w *worker) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			jobPanics.Inc()
			Logger.Errorf("worker %d: job panicked: %v\n%s", w.id, r, debug.Stack())
		}
	}()

	job()
	jobsExecuted.Inc()
}
