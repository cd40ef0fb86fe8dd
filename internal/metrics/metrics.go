// Package metrics exposes the counters of a search run in Prometheus form.
// A run is a batch job, so the usual sink is a textfile picked up by the
// node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/fivewords/internal/index"
	"github.com/heartmarshall/fivewords/internal/search"
)

// Metrics holds the gauges describing the last run.
type Metrics struct {
	lines        prometheus.Gauge
	rejected     *prometheus.GaugeVec
	eligible     prometheus.Gauge
	classes      prometheus.Gauge
	pairs        prometheus.Gauge
	quads        prometheus.Gauge
	candidates   prometheus.Gauge
	duplicates   prometheus.Gauge
	combinations prometheus.Gauge
	expanded     prometheus.Gauge
	phase        *prometheus.GaugeVec
	lastRun      prometheus.Gauge
}

// New registers the run gauges with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		lines: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_input_lines",
			Help: "Non-empty lines read from the word list.",
		}),
		rejected: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fivewords_rejected_words",
			Help: "Lines dropped by the index, by reason.",
		}, []string{"reason"}),
		eligible: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_eligible_words",
			Help: "Words admitted to the index.",
		}),
		classes: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_mask_classes",
			Help: "Distinct letter masks (anagram groups).",
		}),
		pairs: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_pairs",
			Help: "Disjoint pairs after collapsing by union.",
		}),
		quads: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_quads",
			Help: "Disjoint quads composed from pairs.",
		}),
		candidates: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_candidates",
			Help: "Quintets offered to the deduplicator.",
		}),
		duplicates: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_duplicates",
			Help: "Quintets rejected as already seen.",
		}),
		combinations: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_combinations",
			Help: "Unique five-mask combinations.",
		}),
		expanded: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_combinations_expanded",
			Help: "Concrete word tuples with anagrams multiplied out.",
		}),
		phase: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fivewords_phase_duration_seconds",
			Help: "Wall time of each run phase.",
		}, []string{"phase"}),
		lastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "fivewords_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}
}

// ObserveIndex records how the word list was classified.
func (m *Metrics) ObserveIndex(s index.Stats) {
	m.lines.Set(float64(s.Lines))
	m.rejected.WithLabelValues("wrong_length").Set(float64(s.WrongLength))
	m.rejected.WithLabelValues("repeated_letters").Set(float64(s.RepeatedLetters))
	m.rejected.WithLabelValues("invalid_chars").Set(float64(s.InvalidChars))
	m.eligible.Set(float64(s.Eligible))
	m.classes.Set(float64(s.Classes))
}

// ObserveSearch records the engine counters and the expanded result count.
func (m *Metrics) ObserveSearch(s search.Stats, expanded int) {
	m.pairs.Set(float64(s.Pairs))
	m.quads.Set(float64(s.Quads))
	m.candidates.Set(float64(s.Candidates))
	m.duplicates.Set(float64(s.Duplicates))
	m.combinations.Set(float64(s.Unique))
	m.expanded.Set(float64(expanded))
	m.phase.WithLabelValues("pairs").Set(s.PairsTime.Seconds())
	m.phase.WithLabelValues("search").Set(s.SearchTime.Seconds())
}

// ObservePhase records the wall time of a named phase.
func (m *Metrics) ObservePhase(name string, d time.Duration) {
	m.phase.WithLabelValues(name).Set(d.Seconds())
}

// MarkFinished stamps the run completion time.
func (m *Metrics) MarkFinished(t time.Time) {
	m.lastRun.Set(float64(t.Unix()))
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format. The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
