package script

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ops    *prometheus.CounterVec
	length prometheus.Gauge
}

// NewMetrics registers script metrics to reg. Collectors that are
// already registered are reused, so it is fine to call NewMetrics
// more than once with the same reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ops_total",
		Help: "The total number of replayed list operations",
	}, []string{"op", "result"})
	length := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "list_length",
		Help: "Length of the list after the last replay",
	})

	var err error
	m := new(Metrics)
	if m.ops, err = register(reg, ops); err != nil {
		return nil, err
	}
	if m.length, err = register[prometheus.Gauge](reg, length); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, result).Inc()
}

func (m *Metrics) setLength(n int) {
	if m == nil {
		return
	}
	m.length.Set(float64(n))
}
