package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Widget metrics
	DrawableRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trellis",
			Subsystem: "widget",
			Name:      "drawable_rebuilds_total",
			Help:      "Total number of drawables rebuilt at expose time",
		},
		[]string{"widget"},
	)

	Allocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trellis",
			Subsystem: "widget",
			Name:      "allocations_total",
			Help:      "Total number of allocation changes applied",
		},
		[]string{"widget"},
	)

	FocusChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "trellis",
			Subsystem: "widget",
			Name:      "focus_changes_total",
			Help:      "Total number of focus transfers",
		},
	)

	// Input metrics
	InputDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trellis",
			Subsystem: "input",
			Name:      "dropped_total",
			Help:      "Total number of input events dropped by widgets",
		},
		[]string{"reason"},
	)

	InputEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trellis",
			Subsystem: "input",
			Name:      "events_total",
			Help:      "Total number of backend events dispatched",
		},
		[]string{"kind"},
	)

	// Frame metrics
	FramesRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "trellis",
			Subsystem: "frame",
			Name:      "rendered_total",
			Help:      "Total number of frames rendered",
		},
	)

	FrameDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "trellis",
			Subsystem: "frame",
			Name:      "duration_seconds",
			Help:      "Frame render duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100us to ~200ms
		},
	)

	DrawablesCulled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "trellis",
			Subsystem: "frame",
			Name:      "drawables_culled_total",
			Help:      "Total number of drawables skipped by culling",
		},
	)

	TopLevelWindows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "trellis",
			Subsystem: "desktop",
			Name:      "windows",
			Help:      "Number of top-level widgets on the desktop",
		},
	)
)
