package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		catalogLoadsTotal,
		catalogPlans,
		durationSelectionsTotal,
	)
}

var (
	catalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Catalog loads by source kind (file/http/postgres) and result (ok/error).",
		},
		[]string{"source", "result"},
	)

	catalogPlans = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_plans",
			Help: "Number of plans in the most recently loaded catalog.",
		},
	)

	durationSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duration_selections_total",
			Help: "Duration selections by result (ok/invalid).",
		},
		[]string{"result"},
	)
)

// SourceKind maps a catalog locator to its kind: http, postgres or file.
func SourceKind(locator string) string {
	l := norm(locator)
	switch {
	case strings.HasPrefix(l, "http://"), strings.HasPrefix(l, "https://"):
		return "http"
	case strings.HasPrefix(l, "postgres:"):
		return "postgres"
	default:
		return "file"
	}
}

// ObserveCatalogLoad counts a load under the kind of locator.
func ObserveCatalogLoad(locator string, plans int, err error) {
	kind := SourceKind(locator)
	if err != nil {
		catalogLoadsTotal.WithLabelValues(kind, "error").Inc()
		return
	}
	catalogLoadsTotal.WithLabelValues(kind, "ok").Inc()
	catalogPlans.Set(float64(plans))
}

func IncDurationSelection(result string) {
	durationSelectionsTotal.WithLabelValues(norm(result)).Inc()
}
