package pool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// node represents a single element in the queue
type node[T interface{}] struct {
	value *T
	next  atomic.Pointer[node[T]]
}

// jobQueue is a lock-free multi-producer queue with a channel based consumer side.
// Producers append to a linked list with atomic operations. A single dispatcher
// goroutine moves items from the list to an unbuffered channel, which any number
// of workers may receive from, so every item is delivered to exactly one receiver.
//
// There is no strict FIFO guarantee between concurrent producers: the order is
// determined by which producer completes its append first.
type jobQueue[T interface{}] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
	out  chan *T

	closed  atomic.Bool
	pushing atomic.Int64 // producers between their closed check and their append
	size    atomic.Int64

	// Condition variable for efficient waiting of the dispatcher
	mu   sync.Mutex
	cond *sync.Cond
}

// newJobQueue creates a queue and starts its dispatcher goroutine
func newJobQueue[T interface{}]() *jobQueue[T] {
	// Create a sentinel node (dummy node at the beginning)
	sentinel := &node[T]{}

	q := &jobQueue[T]{
		out: make(chan *T),
	}
	q.cond = sync.NewCond(&q.mu)

	q.head.Store(sentinel)
	q.tail.Store(sentinel)

	go q.dispatch()

	return q
}

// Push adds an item to the queue.
// Returns true if the item was added, or false if the queue is closed or value is nil.
// An item for which Push returned true is always delivered, even if Close runs concurrently.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (q *jobQueue[T]) Push(value *T) bool {
	if value == nil {
		return false
	}

	// announce the producer before checking closed, the dispatcher only exits
	// once no producer is in flight
	q.pushing.Add(1)
	defer q.pushing.Add(-1)

	if q.closed.Load() {
		return false
	}

	newNode := &node[T]{value: value}
	var backoff uint8 = 0

	for {
		tailNode := q.tail.Load()
		next := tailNode.next.Load()
		if next == nil {
			if tailNode.next.CompareAndSwap(nil, newNode) {
				// may fail if another producer already helped, tail still moves forward
				q.tail.CompareAndSwap(tailNode, newNode)
				q.size.Add(1)
				q.signal()
				return true
			}
		} else {
			// help a producer that appended but did not move the tail yet
			q.tail.CompareAndSwap(tailNode, next)
		}

		// exponential backoff under contention
		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// signal wakes the dispatcher. The lock is held so the wake up cannot be lost
// between the dispatcher's emptiness check and its Wait.
func (q *jobQueue[T]) signal() {
	q.mu.Lock()
	q.cond.Signal()
	q.mu.Unlock()
}

// dispatch continuously sends items from the linked list to the output channel.
// After Close it drains every remaining item and then closes the channel.
func (q *jobQueue[T]) dispatch() {
	defer close(q.out)

	for {
		// Process all available items in the queue
		for {
			head := q.head.Load()
			next := head.next.Load()
			if next == nil {
				break
			}

			value := next.value
			q.head.Store(next)

			q.out <- value
			q.size.Add(-1)

			// help go gc, next is the new sentinel
			next.value = nil
		}

		if q.closed.Load() {
			// exit only if no producer can still append
			if q.pushing.Load() == 0 && q.head.Load().next.Load() == nil {
				return
			}
			runtime.Gosched()
			continue
		}

		q.mu.Lock()
		if q.head.Load().next.Load() == nil && !q.closed.Load() {
			q.cond.Wait()
		}
		q.mu.Unlock()
	}
}

// Recv returns a receive-only channel for consuming from the queue.
// The channel is closed once the queue is closed and drained.
func (q *jobQueue[T]) Recv() <-chan *T {
	return q.out
}

// Close closes the queue, preventing further writes.
// Any items already in the queue will still be delivered.
func (q *jobQueue[T]) Close() {
	q.closed.Store(true)
	q.signal()
}

// Len returns an approximate count of the items not yet handed to a receiver.
func (q *jobQueue[T]) Len() int {
	// the counter can dip below zero while a producer has not counted its append yet
	if n := q.size.Load(); n > 0 {
		return int(n)
	}
	return 0
}
