// Package prometheus provides an implementation of metrics for objectguess using Prometheus as a backend.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"

	"github.com/thought-machine/objectguess/src/cli/logging"
	"github.com/thought-machine/objectguess/src/config"
	"github.com/thought-machine/objectguess/src/metrics"
)

var log = logging.Log

// Register registers this implementation as the active one, labelling every metric with
// the given session id.
func Register(session string) {
	registry := prometheus.NewRegistry()
	metrics.SetBackend(newProm(registry, session))
}

func newProm(registry *prometheus.Registry, session string) *prom {
	return &prom{
		gatherer:   registry,
		registerer: prometheus.WrapRegistererWith(prometheus.Labels{"session": session}, registry),
	}
}

// prom is the concrete implementation of metrics using Prometheus
type prom struct {
	gatherer   prometheus.Gatherer
	registerer prometheus.Registerer
}

// Push performs a single push of all registered metrics to the pushgateway (if configured).
func (p *prom) Push(config *config.Configuration) error {
	if family, err := p.gatherer.Gather(); err == nil {
		for _, fam := range family {
			for _, metric := range fam.Metric {
				if metric.Counter != nil {
					log.Debug("Metric recorded: %s: %0.0f", *fam.Name, *metric.Counter.Value)
				}
			}
		}
	}
	if config.Metrics.PushGatewayURL == "" {
		return nil
	}
	return push.New(config.Metrics.PushGatewayURL, "objectguess").
		Client(&http.Client{Timeout: time.Duration(config.Metrics.Timeout)}).
		Gatherer(p.gatherer).Format(expfmt.FmtText).
		Push()
}

// RegisterCounter registers a new counter with Prometheus
func (p *prom) RegisterCounter(counter *metrics.Counter) metrics.Incrementer {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "objectguess",
		Subsystem: counter.Subsystem,
		Name:      counter.Name,
		Help:      counter.Help,
	})
	p.registerer.MustRegister(c)
	return c
}

// RegisterHistogram registers a new histogram with Prometheus
func (p *prom) RegisterHistogram(hist *metrics.Histogram) metrics.Observer {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "objectguess",
		Subsystem: hist.Subsystem,
		Name:      hist.Name,
		Help:      hist.Help,
		Buckets:   hist.Buckets,
	})
	p.registerer.MustRegister(h)
	return h
}
