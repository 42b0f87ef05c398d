// Package metrics records parse outcomes as Prometheus metrics.
//
// The CLI is a batch tool, so metrics are not served over HTTP; they are
// written in the node-exporter textfile format after a run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/beetlebugorg/txf/pkg/txf"
)

const namespace = "txf"

// Recorder holds the collectors of one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	filesTotal      *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	objectsTotal    prometheus.Counter
	objectsPerFile  prometheus.Histogram
	parseDuration   prometheus.Histogram
	lastRunFinished prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		filesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parse",
			Name:      "files_total",
			Help:      "Total TXF files processed, by result",
		}, []string{"result"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parse",
			Name:      "errors_total",
			Help:      "Total parse failures, by error kind",
		}, []string{"kind"}),
		objectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parse",
			Name:      "objects_total",
			Help:      "Total objects in successfully parsed files",
		}),
		objectsPerFile: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "parse",
			Name:      "objects_per_file",
			Help:      "Objects per successfully parsed file",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		parseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "parse",
			Name:      "duration_seconds",
			Help:      "Time spent parsing one file",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		lastRunFinished: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
}

// Observe records one file outcome. Its signature matches
// txf.LoadOptions.OnLoad.
func (r *Recorder) Observe(path string, doc *txf.Document, err error, elapsed time.Duration) {
	r.parseDuration.Observe(elapsed.Seconds())
	if err != nil {
		r.filesTotal.WithLabelValues("error").Inc()
		r.errorsTotal.WithLabelValues(txf.ErrorKind(err)).Inc()
		return
	}
	r.filesTotal.WithLabelValues("ok").Inc()
	r.objectsTotal.Add(float64(doc.ObjectCount()))
	r.objectsPerFile.Observe(float64(doc.ObjectCount()))
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile stamps the run end time and writes all metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	r.lastRunFinished.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
