package lstore

import (
	"math"
	"sync"
)

// sizeBoundaries are the upper bounds of the histogram buckets, from 16 bytes to 16 MiB.
// The last bucket takes every larger document.
var sizeBoundaries = []int{
	16, 64, 256, 1024, 4096, // bytes to 4KB
	16384, 65536, 262144, 1048576, // 16KB to 1MB
	4194304, 16777216, // 4MB to 16MB (the default frame limit)
}

// sizeHistogram tracks the distribution of published document sizes without keeping
// every sample. Estimates are the midpoint of the bucket a percentile falls into.
//
// Thread-safe: all methods are safe for concurrent use.
type sizeHistogram struct {
	mu      sync.RWMutex
	buckets []uint64
	count   uint64
	sum     uint64
}

func newSizeHistogram() *sizeHistogram {
	return &sizeHistogram{buckets: make([]uint64, len(sizeBoundaries)+1)}
}

// add records one document of the given size
func (h *sizeHistogram) add(size int) {
	bucket := len(sizeBoundaries)
	for i, boundary := range sizeBoundaries {
		if size <= boundary {
			bucket = i
			break
		}
	}

	h.mu.Lock()
	h.buckets[bucket]++
	h.count++
	h.sum += uint64(size)
	h.mu.Unlock()
}

// average returns the mean document size in bytes
func (h *sizeHistogram) average() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return 0
	}
	return h.sum / h.count
}

// percentile estimates the size below which p percent (0-100) of the documents fall
func (h *sizeHistogram) percentile(p int) uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 || p < 0 || p > 100 {
		return 0
	}

	target := uint64(math.Ceil(float64(h.count) * float64(p) / 100.0))
	var cumulative uint64
	for i, n := range h.buckets {
		cumulative += n
		if cumulative < target {
			continue
		}
		switch {
		case i == 0:
			return uint64(sizeBoundaries[0] / 2)
		case i < len(sizeBoundaries):
			return uint64((sizeBoundaries[i-1] + sizeBoundaries[i]) / 2)
		default:
			return uint64(sizeBoundaries[len(sizeBoundaries)-1] * 2)
		}
	}
	return h.sum / h.count
}
