package observability_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/catalog"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/table"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	prog := catalog.BinaryIncrement()
	m, err := prog.NewMachine("11", -1, machine.WithLifecycleHooks(metrics.Hooks(prog.Name)))
	require.NoError(t, err)
	require.NoError(t, m.Run())
	assert.Equal(t, "100", m.Render())

	// 11 -> 10 -> 00 (grows left) -> 100
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Steps.WithLabelValues(prog.Name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Halts.WithLabelValues(prog.Name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TapeGrowth.WithLabelValues(prog.Name, "left")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.TapeGrowth.WithLabelValues(prog.Name, "right")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Undefined.WithLabelValues(prog.Name)))
}

func TestMetrics_Undefined(t *testing.T) {
	metrics := observability.NewMetrics(nil)

	full := catalog.BinaryIncrement()
	cells, err := catalog.ParseTape("1")
	require.NoError(t, err)
	m, err := machine.New(table.New(full.Table.Rules()[:2]...), "Do", cells, 0,
		machine.WithLifecycleHooks(metrics.Hooks("partial")))
	require.NoError(t, err)

	_, err = m.Step()
	require.NoError(t, err)
	_, err = m.Step()
	require.Error(t, err)
	_, err = m.Step()
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Steps.WithLabelValues("partial")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Undefined.WithLabelValues("partial")))
}

func TestMetrics_ObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	metrics.ObserveRun("busy-beaver-2", runner.Result{Steps: 6, Halted: true})
	metrics.ObserveRun("busy-beaver-2", runner.Result{Steps: 2})

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunSteps, "turing_run_steps"))

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "turing_run_steps" {
			continue
		}
		found = true
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(2), h.GetSampleCount())
		assert.Equal(t, 8.0, h.GetSampleSum())
	}
	assert.True(t, found)
}
