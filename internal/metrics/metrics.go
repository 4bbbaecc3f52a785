// Package metrics records a setup run for the node_exporter textfile collector.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/discourse-setup/internal/platform/host"
	"github.com/imamik/discourse-setup/internal/tuning"
)

const (
	namespace = "discourse_setup"

	bytesPerMB = 1 << 20
)

// Step results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Recorder holds the metrics of one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry
	now      func() time.Time

	stepsTotal   *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec

	hostMemory   prometheus.Gauge
	hostSwap     prometheus.Gauge
	hostFreeDisk *prometheus.GaugeVec
	hostCores    prometheus.Gauge

	sharedBuffers  prometheus.Gauge
	unicornWorkers prometheus.Gauge

	lastRunSuccess   prometheus.Gauge
	lastRunTimestamp prometheus.Gauge
}

// NewRecorder creates a Recorder with every metric registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		now:      time.Now,

		stepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Setup steps run, by step and result",
			},
			[]string{"step", "result"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_duration_seconds",
				Help:      "Duration of setup steps in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10), // 10ms to ~43min
			},
			[]string{"step"},
		),

		hostMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "memory_bytes",
			Help:      "Total physical memory",
		}),
		hostSwap: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "swap_bytes",
			Help:      "Total swap space",
		}),
		hostFreeDisk: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "host",
				Name:      "free_disk_bytes",
				Help:      "Free disk space on the checked filesystem",
			},
			[]string{"path"},
		),
		hostCores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "cpu_cores",
			Help:      "Physical CPU cores",
		}),

		sharedBuffers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tuning",
			Name:      "db_shared_buffers_bytes",
			Help:      "Derived PostgreSQL shared buffer size, 0 when left at the template default",
		}),
		unicornWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tuning",
			Name:      "unicorn_workers",
			Help:      "Derived web worker count, 0 when left at the template default",
		}),

		lastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "Whether the last setup run succeeded (1) or not (0)",
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last setup run finished",
		}),
	}

	r.registry.MustRegister(
		r.stepsTotal,
		r.stepDuration,
		r.hostMemory,
		r.hostSwap,
		r.hostFreeDisk,
		r.hostCores,
		r.sharedBuffers,
		r.unicornWorkers,
		r.lastRunSuccess,
		r.lastRunTimestamp,
	)

	return r
}

// Result maps a step error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveStep records one finished step.
func (r *Recorder) ObserveStep(step, result string, d time.Duration) {
	r.stepsTotal.WithLabelValues(step, result).Inc()
	if result != ResultSkipped {
		r.stepDuration.WithLabelValues(step).Observe(d.Seconds())
	}
}

// Step starts timing step; the returned func records it with the result of err.
func (r *Recorder) Step(step string) func(err error) {
	start := r.now()
	return func(err error) {
		r.ObserveStep(step, Result(err), r.now().Sub(start))
	}
}

// SetResources records a host snapshot.
func (r *Recorder) SetResources(res host.Resources) {
	r.hostMemory.Set(float64(res.MemoryMB * bytesPerMB))
	r.hostSwap.Set(float64(res.SwapMB * bytesPerMB))
	r.hostFreeDisk.WithLabelValues(res.DiskPath).Set(float64(res.FreeDiskMB * bytesPerMB))
	r.hostCores.Set(float64(res.Cores))
}

// SetTuning records the derived tuning. Settings that were not applied are recorded as 0.
func (r *Recorder) SetTuning(t tuning.Tuning, applied tuning.Applied) {
	var buffers, workers float64
	if applied.SharedBuffers {
		buffers = float64(t.SharedBuffersMB * bytesPerMB)
	}
	if applied.Workers {
		workers = float64(t.Workers)
	}
	r.sharedBuffers.Set(buffers)
	r.unicornWorkers.Set(workers)
}

// Finish records the outcome of the whole run.
func (r *Recorder) Finish(err error) {
	if err == nil {
		r.lastRunSuccess.Set(1)
	} else {
		r.lastRunSuccess.Set(0)
	}
	r.lastRunTimestamp.Set(float64(r.now().Unix()))
}

// WriteTextfile writes the registry to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return errors.New("metrics file path is empty")
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
