package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the flow counters on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	onboarding    *prometheus.CounterVec
	trainers      *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_registrations_total",
			Help: "Accounts registered by role.",
		}, []string{"role"}),
		onboarding: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_onboarding_transitions_total",
			Help: "Onboarding transitions by intent and resulting state.",
		}, []string{"intent", "state"}),
		trainers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_trainer_transitions_total",
			Help: "Trainer approval transitions by intent.",
		}, []string{"intent"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.logins, m.registrations, m.onboarding, m.trainers, m.httpRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Registration(role string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(role).Inc()
}

func (m *Metrics) OnboardingTransition(intent, state string) {
	if m == nil {
		return
	}
	m.onboarding.WithLabelValues(intent, state).Inc()
}

func (m *Metrics) TrainerTransition(intent string) {
	if m == nil {
		return
	}
	m.trainers.WithLabelValues(intent).Inc()
}

func (m *Metrics) HTTPRequest(method, route, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
}
