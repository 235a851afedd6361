package coremain

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/slist/mlog"
	"github.com/pmkol/slist/pkg/script"
)

type Slist struct {
	logger *zap.Logger

	metricsReg *prometheus.Registry
	metrics    *script.Metrics
}

func NewSlist(cfg *Config) (*Slist, error) {
	lg, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	s := &Slist{
		logger:     lg,
		metricsReg: newMetricsReg(),
	}
	s.metrics, err = script.NewMetrics(s.GetMetricsReg())
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return s, nil
}

// Replay runs sc and logs a summary of the op counters.
func (s *Slist) Replay(sc *script.Script) (*script.Result, error) {
	s.logger.Info("replaying script", zap.Int("init", len(sc.Init)), zap.Int("ops", len(sc.Ops)))
	res, err := script.Run(sc, s.logger, s.metrics)
	if err != nil {
		return res, err
	}
	s.logger.Info("script done",
		zap.Int("ops", res.Ops),
		zap.Int("expected_failures", res.Failed),
		zap.Strings("list", res.Values),
	)
	s.logMetrics()
	return res, nil
}

func (s *Slist) logMetrics() {
	mfs, err := s.metricsReg.Gather()
	if err != nil {
		s.logger.Warn("failed to gather metrics", zap.Error(err))
		return
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.String("name", mf.GetName())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				fields = append(fields, zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				fields = append(fields, zap.Float64("value", m.GetGauge().GetValue()))
			default:
				continue
			}
			s.logger.Debug("metric", fields...)
		}
	}
}

func (s *Slist) GetMetricsReg() prometheus.Registerer {
	return prometheus.WrapRegistererWithPrefix("slist_", s.metricsReg)
}

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

type dump struct {
	Length int      `yaml:"length"`
	Values []string `yaml:"values"`
}

func dumpResult(w io.Writer, res *script.Result) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(dump{Length: len(res.Values), Values: res.Values})
}
