package otel

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	runtimeotel "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/imtaco/dailyco-go/internal/log"
)

// ShutdownFunc flushes and stops the providers installed by Init.
type ShutdownFunc func(context.Context) error

type providers struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Init installs global tracer and meter providers exporting over OTLP gRPC.
// Disabled signals keep the no-op globals, so instruments created in
// package init() stay cheap.
func Init(ctx context.Context, config *Config, logger *log.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	logger.Info("OTEL configuration",
		log.Bool("tracing_enabled", config.TracingEnabled),
		log.Bool("metrics_enabled", config.MetricsEnabled),
		log.Bool("go_metrics_enabled", config.RuntimeMetricsEnabled),
		log.String("endpoint", config.Endpoint),
		log.String("service_name", config.ServiceName))

	if err := config.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid otel config")
	}

	p := &providers{}
	if !config.TracingEnabled && !config.MetricsEnabled {
		return p.shutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(config.ServiceName)),
		resource.WithFromEnv(),
		resource.WithHost(),
		resource.WithDetectors(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create resource")
	}

	if config.TracingEnabled {
		if p.tracerProvider, err = initTracing(ctx, config, res); err != nil {
			return nil, errors.Wrap(err, "init tracing")
		}
	}

	if config.MetricsEnabled {
		if p.meterProvider, err = initMetrics(ctx, config, res); err != nil {
			_ = p.shutdown(ctx)
			return nil, errors.Wrap(err, "init metrics")
		}
		if config.RuntimeMetricsEnabled {
			if err := runtimeotel.Start(runtimeotel.WithMeterProvider(p.meterProvider)); err != nil {
				_ = p.shutdown(ctx)
				return nil, errors.Wrap(err, "start runtime metrics")
			}
		}
	}

	return p.shutdown, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0.0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

func initTracing(ctx context.Context, config *Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(config.Endpoint),
		otlptracegrpc.WithTimeout(config.Timeout),
	}
	if config.Insecure {
		opts = append(opts,
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create OTLP trace exporter")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler(config.SamplingRate))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return provider, nil
}

func initMetrics(ctx context.Context, config *Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(config.Endpoint),
		otlpmetricgrpc.WithTimeout(config.Timeout),
	}
	if config.Insecure {
		opts = append(opts,
			otlpmetricgrpc.WithTLSCredentials(insecure.NewCredentials()),
			otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create OTLP metric exporter")
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(config.MetricsExportInterval),
		)),
	)
	// instruments already obtained from the global provider delegate to this one
	otel.SetMeterProvider(provider)
	return provider, nil
}

func (p *providers) shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "shutdown tracer provider"))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "shutdown meter provider"))
		}
	}
	return stderrors.Join(errs...)
}
