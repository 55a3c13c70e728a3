package lstore

import "testing"

func TestSizeHistogramEmpty(t *testing.T) {
	h := newSizeHistogram()
	if h.average() != 0 || h.percentile(50) != 0 {
		t.Error("Empty histogram must report zero sizes")
	}
}

func TestSizeHistogramEstimates(t *testing.T) {
	h := newSizeHistogram()

	// 9 small documents and one large one
	for i := 0; i < 9; i++ {
		h.add(10)
	}
	h.add(100_000)

	if got := h.average(); got != (9*10+100_000)/10 {
		t.Errorf("Unexpected average %d", got)
	}
	if got := h.percentile(50); got != 8 {
		t.Errorf("Expected median estimate 8 (first bucket), got %d", got)
	}
	// 100_000 falls into the (65536, 262144] bucket
	if got := h.percentile(100); got != (65536+262144)/2 {
		t.Errorf("Unexpected p100 estimate %d", got)
	}
	if h.percentile(-1) != 0 || h.percentile(101) != 0 {
		t.Error("Out of range percentiles must return 0")
	}
}

func TestSizeHistogramOverflowBucket(t *testing.T) {
	h := newSizeHistogram()
	h.add(64 * 1024 * 1024)
	if got := h.percentile(50); got != uint64(sizeBoundaries[len(sizeBoundaries)-1]*2) {
		t.Errorf("Unexpected estimate for the overflow bucket: %d", got)
	}
}
