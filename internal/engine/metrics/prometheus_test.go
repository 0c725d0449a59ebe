package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestPrometheusProvider_CounterAccumulates(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider(reg, "test")

	p.Counter("jobs_delivered").Add(1)
	p.Counter("jobs_delivered").Add(1)
	p.Counter("jobs_delivered").Add(3)

	got := gather(t, reg, "test_jobs_delivered")
	require.Equal(t, float64(5), got.GetCounter().GetValue())
}

func TestPrometheusProvider_ReusesInstrumentByName(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider(reg, "test")

	c1 := p.Counter("x")
	c2 := p.Counter("x")

	c1.Add(1)
	c2.Add(1)

	got := gather(t, reg, "test_x")
	require.Equal(t, float64(2), got.GetCounter().GetValue())
}

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() == name {
			require.Len(t, f.GetMetric(), 1)
			return f.GetMetric()[0]
		}
	}
	t.Fatalf("metric family %q not found", name)
	return nil
}
