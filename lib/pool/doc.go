// Package pool provides a fixed size worker pool that decouples accepting work from
// executing it.
//
// Key Components:
//
//   - Pool: a set of long lived workers created by NewPool. Execute hands a Job to the
//     pool, Shutdown stops intake, drains every queued job and joins the workers.
//
//   - jobQueue: the shared multi-producer queue behind the pool. Producers append to a
//     lock-free linked list; a dispatcher goroutine feeds the items into an unbuffered
//     channel that all workers receive from. Closing the queue lets the dispatcher drain
//     the remaining items before it closes the channel, which is what ends the workers.
//
// Guarantees:
//
//   - Every job accepted by Execute runs exactly once, on exactly one worker.
//   - There is no ordering or priority between jobs submitted concurrently.
//   - Execute after Shutdown has begun returns ErrPoolClosed; the job is not run.
//   - Shutdown blocks until every accepted job finished and every worker exited. It is
//     idempotent.
//   - A panicking job is recovered at the job boundary and logged; its worker keeps
//     running, so the pool never loses capacity.
//
// Metrics:
//
//	The package exports the counters ngram_pool_jobs_total, ngram_pool_job_panics_total
//	and ngram_pool_rejected_total through github.com/VictoriaMetrics/metrics.
package pool
