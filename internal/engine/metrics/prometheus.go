package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider adapts a prometheus.Registerer into a Provider,
// registering one instrument per distinct name on first use.
type PrometheusProvider struct {
	reg        prometheus.Registerer
	namespace  string
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusProvider builds a Provider that registers instruments under
// namespace (e.g. "goparallel") on reg.
func NewPrometheusProvider(reg prometheus.Registerer, namespace string) *PrometheusProvider {
	return &PrometheusProvider{
		reg:        reg,
		namespace:  namespace,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func (p *PrometheusProvider) Counter(name string) Counter {
	if c, ok := p.counters[name]; ok {
		return c.WithLabelValues()
	}
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: p.namespace,
		Name:      name,
	}, nil)
	p.counters[name] = registerOrReuse(p.reg, c).(*prometheus.CounterVec)
	return p.counters[name].WithLabelValues()
}

func (p *PrometheusProvider) Gauge(name string) Gauge {
	if g, ok := p.gauges[name]; ok {
		return g.WithLabelValues()
	}
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: p.namespace,
		Name:      name,
	}, nil)
	p.gauges[name] = registerOrReuse(p.reg, g).(*prometheus.GaugeVec)
	return p.gauges[name].WithLabelValues()
}

func (p *PrometheusProvider) Histogram(name string) Histogram {
	if h, ok := p.histograms[name]; ok {
		return h.WithLabelValues()
	}
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: p.namespace,
		Name:      name,
		Buckets:   prometheus.DefBuckets,
	}, nil)
	p.histograms[name] = registerOrReuse(p.reg, h).(*prometheus.HistogramVec)
	return p.histograms[name].WithLabelValues()
}

// registerOrReuse registers c on reg, and on AlreadyRegisteredError (the
// same {namespace, name} pair was registered by an earlier provider sharing
// reg) returns the existing collector instead of panicking. Two
// PrometheusProviders built on the same registerer with the same namespace
// is expected across repeated in-process runs (e.g. tests invoking the
// command entry point several times in one binary).
func registerOrReuse(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
