package otel

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config selects which signals are exported. Both are off by default; the
// library's instruments then stay no-ops.
type Config struct {
	TracingEnabled bool    `mapstructure:"tracing_enabled"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`

	MetricsEnabled        bool          `mapstructure:"metrics_enabled"`
	MetricsExportInterval time.Duration `mapstructure:"metrics_export_interval"`
	RuntimeMetricsEnabled bool          `mapstructure:"go_metrics_enabled"`

	ServiceName string        `mapstructure:"service_name"`
	Endpoint    string        `mapstructure:"endpoint"` // OTLP gRPC collector, host:port
	Insecure    bool          `mapstructure:"insecure"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (c *Config) validate() error {
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return errors.Errorf("sampling_rate must be within [0, 1], got %v", c.SamplingRate)
	}
	if (c.TracingEnabled || c.MetricsEnabled) && c.Endpoint == "" {
		return errors.New("endpoint is required when exporting")
	}
	if c.MetricsEnabled && c.MetricsExportInterval <= 0 {
		return errors.New("metrics_export_interval must be positive")
	}
	return nil
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("tracing_enabled"), false)
	v.SetDefault(p("sampling_rate"), 1.0)
	v.SetDefault(p("metrics_enabled"), false)
	v.SetDefault(p("metrics_export_interval"), "30s")
	v.SetDefault(p("go_metrics_enabled"), false)
	v.SetDefault(p("service_name"), "dailyco")
	v.SetDefault(p("endpoint"), "localhost:4317")
	v.SetDefault(p("insecure"), true)
	v.SetDefault(p("timeout"), "10s")
}
