package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Renders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_renders_total",
			Help: "Template renders by output (visible, print) and status",
		},
		[]string{"output", "status"},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_render_duration_seconds",
			Help:    "Time spent producing both preview outputs",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"template"},
	)

	TemplateFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_fetch_total",
			Help: "Template lookups by source (builtin, remote, cache) and status",
		},
		[]string{"source", "status"},
	)

	Normalizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_normalize_total",
			Help: "Documents normalized by input provenance",
		},
		[]string{"source"},
	)
)
