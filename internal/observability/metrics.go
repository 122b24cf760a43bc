package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence"
)

const metricsNamespace = "lineups"

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RegisterMirror exports the persistence writer counters. stats is read on
// every scrape.
func RegisterMirror(reg prometheus.Registerer, stats func() persistence.MirrorStats) error {
	counters := []struct {
		name, help string
		value      func(persistence.MirrorStats) uint64
	}{
		{"scheduled_total", "Document saves handed to the mirror.", func(s persistence.MirrorStats) uint64 { return s.Scheduled }},
		{"written_total", "Document saves written to the backend.", func(s persistence.MirrorStats) uint64 { return s.Written }},
		{"coalesced_total", "Document saves replaced by a newer pending save.", func(s persistence.MirrorStats) uint64 { return s.Coalesced }},
		{"failed_total", "Document saves the backend rejected.", func(s persistence.MirrorStats) uint64 { return s.Failed }},
	}

	for _, c := range counters {
		value := c.value
		err := reg.Register(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "mirror",
			Name:      c.name,
			Help:      c.help,
		}, func() float64 { return float64(value(stats())) }))
		if err != nil {
			return err
		}
	}
	return nil
}
