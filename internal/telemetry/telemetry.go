// Package telemetry exposes the outcome of a comparison run as Prometheus
// gauges and writes them in node-exporter textfile format.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/groupdiff/groupdiff/internal/compare"
)

const namespace = "groupdiff"

// Metrics holds the per-configuration gauges of one run.
type Metrics struct {
	Registry *prometheus.Registry

	EventsCompared  *prometheus.GaugeVec
	Diffs           *prometheus.GaugeVec
	StructuralDiffs *prometheus.GaugeVec
	Splits          *prometheus.GaugeVec
	Merges          *prometheus.GaugeVec
	Renames         *prometheus.GaugeVec
	MissingOutputs  *prometheus.GaugeVec
	ConfigFailed    *prometheus.GaugeVec
}

func gauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, []string{"config"})
}

// New registers a fresh set of gauges on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry:        prometheus.NewRegistry(),
		EventsCompared:  gauge("events_compared", "Event pairs compared."),
		Diffs:           gauge("diffs", "Distinct diffs between baseline and candidate outputs."),
		StructuralDiffs: gauge("structural_diffs", "Distinct diffs that change more than hash lines."),
		Splits:          gauge("splits", "Baseline hashes that map to several candidate hashes."),
		Merges:          gauge("merges", "Candidate hashes that map to several baseline hashes."),
		Renames:         gauge("renames", "Baseline hashes that map to exactly one new hash."),
		MissingOutputs:  gauge("missing_outputs", "Baseline outputs without a candidate counterpart."),
		ConfigFailed:    gauge("config_failed", "1 when the configuration could not be compared."),
	}
	m.Registry.MustRegister(
		m.EventsCompared,
		m.Diffs,
		m.StructuralDiffs,
		m.Splits,
		m.Merges,
		m.Renames,
		m.MissingOutputs,
		m.ConfigFailed,
	)
	return m
}

// Observe sets the gauges for res.Config.
func (m *Metrics) Observe(res compare.Result) {
	cfg := res.Config
	if res.Err != nil {
		m.ConfigFailed.WithLabelValues(cfg).Set(1)
		return
	}
	m.ConfigFailed.WithLabelValues(cfg).Set(0)

	sum := res.Summary
	if sum == nil {
		return
	}
	m.EventsCompared.WithLabelValues(cfg).Set(float64(sum.Events))
	m.Diffs.WithLabelValues(cfg).Set(float64(sum.TotalDiffs))
	m.StructuralDiffs.WithLabelValues(cfg).Set(float64(sum.StructuralDiffs))
	m.Splits.WithLabelValues(cfg).Set(float64(len(sum.Splits)))
	m.Merges.WithLabelValues(cfg).Set(float64(len(sum.Merges)))
	m.Renames.WithLabelValues(cfg).Set(float64(len(sum.Renames)))
	m.MissingOutputs.WithLabelValues(cfg).Set(float64(len(sum.Missing)))
}

// WriteTextfile writes the registry to path, creating its directory.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
