package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	registry *prometheus.Registry

	extractions        *prometheus.CounterVec
	extractionDuration prometheus.Histogram
	commands           *prometheus.CounterVec
	commandErrors      *prometheus.CounterVec
	sessions           prometheus.Gauge
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groomgame_extractions_total",
				Help: "Video question extractions by outcome (success, unavailable, failure)",
			},
			[]string{"outcome"},
		),
		extractionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "groomgame_extraction_duration_seconds",
				Help:    "Time spent uploading, processing, and analyzing a video",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groomgame_commands_total",
				Help: "Game commands received by command type",
			},
			[]string{"command"},
		),
		commandErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groomgame_command_errors_total",
				Help: "Rejected game commands by command type and error kind",
			},
			[]string{"command", "kind"},
		),
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "groomgame_sessions_active",
				Help: "Browser sessions currently held in memory",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.extractions,
		m.extractionDuration,
		m.commands,
		m.commandErrors,
		m.sessions,
	)

	return m
}

func (m *Metrics) observeCommand(command string, err error) {
	m.commands.WithLabelValues(command).Inc()

	if err != nil {
		m.commandErrors.WithLabelValues(command, errorKind(err)).Inc()
	}
}

func (m *Metrics) observeExtraction(err error, started time.Time) {
	m.extractionDuration.Observe(time.Since(started).Seconds())

	outcome := "success"
	if err != nil {
		outcome = errorKind(err)
	}

	m.extractions.WithLabelValues(outcome).Inc()
}
