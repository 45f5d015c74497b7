// Package metrics exports engine observations to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dosdefrag/defrag"
)

// PrometheusCollector implements defrag.Metrics backed by Prometheus.
// Collectors are created and registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	clusters      *prometheus.GaugeVec
	phase         *prometheus.GaugeVec
	transitions   *prometheus.CounterVec
	operations    prometheus.Counter
	fileSize      prometheus.Histogram
	opDelay       prometheus.Histogram
	defragged     prometheus.Gauge
	totalToDefrag prometheus.Gauge
	progress      prometheus.Gauge
	noFreeRegion  prometheus.Counter
	restarts      prometheus.Counter
	driveIOPS     *prometheus.GaugeVec
}

var _ defrag.Metrics = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector. A nil reg uses prometheus.DefaultRegisterer and an
// empty namespace defaults to "defrag".
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "defrag"
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.clusters = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "layout",
			Name:      "clusters",
			Help:      "Clusters per state in the most recently generated layout.",
		}, []string{"state"})

		p.phase = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "phase",
			Help:      "1 for the current simulation phase, 0 otherwise.",
		}, []string{"phase"})

		p.transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "phase_transitions_total",
			Help:      "Phase transitions by destination phase.",
		}, []string{"to"})

		p.operations = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "File moves scheduled.",
		})

		p.fileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "file_size_clusters",
			Help:      "Requested size of scheduled file moves in clusters.",
			Buckets:   []float64{1, 2, 3, 4, 5},
		})

		p.opDelay = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "operation_delay_seconds",
			Help:      "Scheduled duration of file moves.",
			Buckets:   []float64{0.125, 0.25, 0.5, 1, 1.5, 2, 3},
		})

		p.defragged = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "clusters_defragged",
			Help:      "Clusters moved in the current run.",
		})

		p.totalToDefrag = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "clusters_to_defrag",
			Help:      "Clusters the current run has to move.",
		})

		p.progress = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "progress_percent",
			Help:      "Completion of the current run.",
		})

		p.noFreeRegion = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "no_free_region_total",
			Help:      "Moves completed in place because no contiguous free run was large enough.",
		})

		p.restarts = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "restarts_total",
			Help:      "Runs restarted with a fresh layout.",
		})

		p.driveIOPS = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "drive",
			Name:      "iops",
			Help:      "Simulated throughput of the selected drive.",
		}, []string{"drive"})

		p.reg.MustRegister(p.clusters)
		p.reg.MustRegister(p.phase)
		p.reg.MustRegister(p.transitions)
		p.reg.MustRegister(p.operations)
		p.reg.MustRegister(p.fileSize)
		p.reg.MustRegister(p.opDelay)
		p.reg.MustRegister(p.defragged)
		p.reg.MustRegister(p.totalToDefrag)
		p.reg.MustRegister(p.progress)
		p.reg.MustRegister(p.noFreeRegion)
		p.reg.MustRegister(p.restarts)
		p.reg.MustRegister(p.driveIOPS)
	})
}

// LayoutGenerated records the per-state histogram and resets run gauges.
func (p *PrometheusCollector) LayoutGenerated(drive defrag.Drive, _ int, histogram map[defrag.ClusterState]int) {
	p.ensureRegistered()
	for _, s := range defrag.AllClusterStates {
		p.clusters.WithLabelValues(s.String()).Set(float64(histogram[s]))
	}
	p.driveIOPS.Reset()
	p.driveIOPS.WithLabelValues(string(drive.Letter)).Set(float64(drive.IOPS))
	p.defragged.Set(0)
	p.totalToDefrag.Set(float64(histogram[defrag.Pending] + 2))
	p.progress.Set(0)
	p.setPhase(defrag.Initializing)
}

// PhaseChanged counts the transition and moves the phase gauge.
func (p *PrometheusCollector) PhaseChanged(_, to defrag.Phase) {
	p.ensureRegistered()
	p.transitions.WithLabelValues(to.String()).Inc()
	p.setPhase(to)
}

func (p *PrometheusCollector) setPhase(current defrag.Phase) {
	for ph := defrag.Initializing; ph <= defrag.Finished; ph++ {
		v := 0.0
		if ph == current {
			v = 1
		}
		p.phase.WithLabelValues(ph.String()).Set(v)
	}
}

// OperationStarted observes a scheduled file move.
func (p *PrometheusCollector) OperationStarted(fileSize int, delay time.Duration) {
	p.ensureRegistered()
	p.operations.Inc()
	p.fileSize.Observe(float64(fileSize))
	p.opDelay.Observe(delay.Seconds())
}

// ClusterDefragged mirrors the run statistics.
func (p *PrometheusCollector) ClusterDefragged(stats defrag.Stats) {
	p.ensureRegistered()
	p.defragged.Set(float64(stats.ClustersDefragged))
	p.totalToDefrag.Set(float64(stats.TotalToDefrag))
	p.progress.Set(stats.ProgressPercent())
}

// NoFreeRegion counts an in-place move.
func (p *PrometheusCollector) NoFreeRegion() {
	p.ensureRegistered()
	p.noFreeRegion.Inc()
}

// Restarted counts a restart.
func (p *PrometheusCollector) Restarted() {
	p.ensureRegistered()
	p.restarts.Inc()
}
