// Package metrics provides a generic internal interface to metrics for objectguess.
// It's modelled on Prometheus but keeps the rest of the code independent of any
// particular backend; until one is set every metric is a no-op.
package metrics

import (
	"github.com/thought-machine/objectguess/src/cli/logging"
	"github.com/thought-machine/objectguess/src/config"
)

var log = logging.Log

// A Backend is what actually records metrics.
type Backend interface {
	RegisterCounter(counter *Counter) Incrementer
	RegisterHistogram(histogram *Histogram) Observer
	Push(config *config.Configuration) error
}

var backend Backend

// All the metrics created so far, so they can be attached to a backend when one is set.
var (
	counters   []*Counter
	histograms []*Histogram
)

// SetBackend attaches every metric to the given backend.
// Metrics created afterwards are attached as they're created.
func SetBackend(b Backend) {
	for _, counter := range counters {
		counter.impl = b.RegisterCounter(counter)
	}
	for _, histogram := range histograms {
		histogram.impl = b.RegisterHistogram(histogram)
	}
	backend = b
}

// Push sends the current metric values to the backend, if there is one.
// Failures are logged rather than returned since metrics are never essential.
func Push(config *config.Configuration) {
	if backend == nil {
		return
	}
	if err := backend.Push(config); err != nil {
		log.Warning("Error pushing metrics: %s", err)
	}
}

// An Incrementer backs a Counter.
type Incrementer interface {
	Inc()
	Add(float64)
}

// An Observer backs a Histogram.
type Observer interface {
	Observe(float64)
}

// noop discards everything.
type noop struct{}

func (noop) Inc()            {}
func (noop) Add(float64)     {}
func (noop) Observe(float64) {}

// A Counter counts up a unitless quantity, for example the number of rounds played.
type Counter struct {
	Subsystem, Name, Help string
	impl                  Incrementer
}

// NewCounter creates a new counter. It should be called at init time.
func NewCounter(subsystem, name, help string) *Counter {
	c := &Counter{Subsystem: subsystem, Name: name, Help: help, impl: noop{}}
	if backend != nil {
		c.impl = backend.RegisterCounter(c)
	}
	counters = append(counters, c)
	return c
}

// Inc adds one to the counter.
func (c *Counter) Inc() {
	c.impl.Inc()
}

// Add adds n to the counter.
func (c *Counter) Add(n int) {
	c.impl.Add(float64(n))
}

// A Histogram records the distribution of some value into buckets.
type Histogram struct {
	Subsystem, Name, Help string
	Buckets               []float64
	impl                  Observer
}

// NewHistogram creates a new histogram. It should be called at init time.
func NewHistogram(subsystem, name, help string, buckets []float64) *Histogram {
	h := &Histogram{Subsystem: subsystem, Name: name, Help: help, Buckets: buckets, impl: noop{}}
	if backend != nil {
		h.impl = backend.RegisterHistogram(h)
	}
	histograms = append(histograms, h)
	return h
}

// Observe records a single value.
func (h *Histogram) Observe(value float64) {
	h.impl.Observe(value)
}

// LinearBuckets returns count bucket boundaries starting at start, each width apart.
func LinearBuckets(start, width float64, count int) []float64 {
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start + float64(i)*width
	}
	return buckets
}
