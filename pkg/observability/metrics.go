package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// Metrics holds the collectors for machine execution.
type Metrics struct {
	Steps      *prometheus.CounterVec
	Halts      *prometheus.CounterVec
	Undefined  *prometheus.CounterVec
	TapeGrowth *prometheus.CounterVec
	RunSteps   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Total number of transitions applied",
			},
			[]string{"machine"},
		),
		Halts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_halts_total",
				Help: "Total number of machines that reached an accepting action",
			},
			[]string{"machine"},
		),
		Undefined: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_undefined_transitions_total",
				Help: "Total number of steps that found no matching rule",
			},
			[]string{"machine"},
		),
		TapeGrowth: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_tape_growth_total",
				Help: "Total number of blank cells added at a tape boundary",
			},
			[]string{"machine", "direction"},
		),
		RunSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Steps applied per bounded run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Halts, m.Undefined, m.TapeGrowth, m.RunSteps)
	}
	return m
}

// Hooks returns lifecycle hooks that record events for the named machine.
func (m *Metrics) Hooks(machine string) domain.LifecycleHooks {
	steps := m.Steps.WithLabelValues(machine)
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			steps.Inc()
			if e.Grew {
				m.TapeGrowth.WithLabelValues(machine, growthLabel(e.Move)).Inc()
			}
		},
		OnHalt: func(*domain.HaltEvent) {
			m.Halts.WithLabelValues(machine).Inc()
		},
		OnUndefined: func(*domain.UndefinedEvent) {
			m.Undefined.WithLabelValues(machine).Inc()
		},
	}
}

// ObserveRun records the length of a bounded run.
func (m *Metrics) ObserveRun(machine string, res runner.Result) {
	m.RunSteps.WithLabelValues(machine).Observe(float64(res.Steps))
}

func growthLabel(d domain.Direction) string {
	if d == domain.Left {
		return "left"
	}
	return "right"
}
