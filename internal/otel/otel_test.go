package otel

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/log"
)

func TestInitDisabled(t *testing.T) {
	v := viper.New()
	Setup(v, "otel")
	var cfg struct {
		Otel Config `mapstructure:"otel"`
	}
	require.NoError(t, v.Unmarshal(&cfg))
	require.False(t, cfg.Otel.TracingEnabled)
	require.Equal(t, "dailyco", cfg.Otel.ServiceName)

	shutdown, err := Init(context.Background(), &cfg.Otel, log.NewTest(t))
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitInvalidConfig(t *testing.T) {
	cases := []Config{
		{SamplingRate: 1.5},
		{SamplingRate: -0.1},
		{TracingEnabled: true, SamplingRate: 1},
		{MetricsEnabled: true, SamplingRate: 1, Endpoint: "localhost:4317"},
	}
	for _, cfg := range cases {
		_, err := Init(context.Background(), &cfg, nil)
		require.Error(t, err, "%+v", cfg)
	}
}

func TestSampler(t *testing.T) {
	require.Equal(t, "AlwaysOnSampler", sampler(1).Description())
	require.Equal(t, "AlwaysOffSampler", sampler(0).Description())
	require.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestClientSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	_, ok := StartClientSpan(context.Background(), tracer, "ok", attribute.String("k", "v"))
	EndSpan(ok, nil)

	_, failed := StartClientSpan(context.Background(), tracer, "failed")
	EndSpan(failed, errors.New(errors.Code("boom"), "went wrong"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	require.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Contains(t, spans[0].Attributes(), attribute.String("k", "v"))

	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Contains(t, spans[1].Attributes(), attribute.String("error.type", "boom"))
}
