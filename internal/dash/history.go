package dash

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultHistorySize is the fallback number of samples kept per metric.
const DefaultHistorySize = 60

// History keeps a ring buffer of recent samples per metric, fed by the
// /metrics scrape loop. Counters (the Prometheus "_total" convention) are
// stored as per-second rates derived from consecutive scrapes; everything
// else is stored as-is. Safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	size    int
	buffers map[string]*ringBuffer

	prev   map[string]float64
	prevAt time.Time
}

// ringBuffer is a fixed-size circular buffer of float64 samples.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history keeping size samples per metric.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:    size,
		buffers: make(map[string]*ringBuffer),
		prev:    make(map[string]float64),
	}
}

// Sample folds one scrape into the buffers. The first scrape seeds counter
// baselines without recording a rate; a counter that goes backwards (service
// restart) records zero for that interval.
func (h *History) Sample(samples map[string]float64, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	elapsed := at.Sub(h.prevAt).Seconds()
	first := h.prevAt.IsZero()

	for name, value := range samples {
		if !isCounter(name) {
			h.buffer(name).push(value)
			continue
		}

		if first || elapsed <= 0 {
			continue
		}
		delta := value - h.prev[name]
		if delta < 0 {
			delta = 0
		}
		h.buffer(name).push(delta / elapsed)
	}

	for name, value := range samples {
		h.prev[name] = value
	}
	h.prevAt = at
}

// Values returns up to count recent samples for the metric, oldest first.
func (h *History) Values(name string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.buffers[name]
	if !ok {
		return nil
	}
	return buf.last(count)
}

// Latest returns the most recent sample for the metric.
func (h *History) Latest(name string) (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.buffers[name]
	if !ok || buf.count == 0 {
		return 0, false
	}
	vals := buf.last(1)
	return vals[0], true
}

// Names returns every tracked metric, sorted.
func (h *History) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.buffers))
	for name := range h.buffers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of stored samples for the metric.
func (h *History) Count(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.buffers[name]
	if !ok {
		return 0
	}
	return buf.count
}

// Clear drops all buffers and counter baselines.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buffers = make(map[string]*ringBuffer)
	h.prev = make(map[string]float64)
	h.prevAt = time.Time{}
}

// IsCounterMetric reports whether the named metric is recorded as a rate.
func IsCounterMetric(name string) bool {
	return isCounter(name)
}

// isCounter follows the Prometheus naming convention for counters.
func isCounter(name string) bool {
	return strings.HasSuffix(name, "_total")
}

// buffer returns the ring buffer for a metric, creating it if needed.
// Must be called with h.mu held.
func (h *History) buffer(name string) *ringBuffer {
	buf, ok := h.buffers[name]
	if !ok {
		buf = &ringBuffer{data: make([]float64, h.size), size: h.size}
		h.buffers[name] = buf
	}
	return buf
}

// push adds a value, overwriting the oldest once full.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// last returns up to count values in chronological order, oldest first.
func (r *ringBuffer) last(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
