package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//**********************************************************
// metrics
//**********************************************************

const (
	CLICK_SELECTED = "selected"
	CLICK_INVALID  = "invalid_role"
	CLICK_OUTSIDE  = "outside"
	CLICK_IGNORED  = "ignored"
)

type Metrics struct {
	registry *prometheus.Registry
	clicks   *prometheus.CounterVec
	lookups  *prometheus.CounterVec
	sessions prometheus.Gauge
	builds   prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_clicks_total",
			Help: "Map clicks and cell selections by outcome.",
		}, []string{"outcome"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_route_lookups_total",
			Help: "Route lookups on completed selections.",
		}, []string{"result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "explorer_active_sessions",
			Help: "Number of open selection sessions.",
		}),
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_builds_total",
			Help: "Number of explorer builds from input tables.",
		}),
	}
	m.registry.MustRegister(m.clicks, m.lookups, m.sessions, m.builds)
	return m
}

func (self *Metrics) ObserveClick(outcome string) {
	self.clicks.WithLabelValues(outcome).Inc()
}

func (self *Metrics) ObserveLookup(found bool) {
	if found {
		self.lookups.WithLabelValues("hit").Inc()
	} else {
		self.lookups.WithLabelValues("miss").Inc()
	}
}

func (self *Metrics) SetSessions(count int) {
	self.sessions.Set(float64(count))
}

func (self *Metrics) ObserveBuild() {
	self.builds.Inc()
}

func (self *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(self.registry, promhttp.HandlerOpts{})
}
