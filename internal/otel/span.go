package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/imtaco/dailyco-go/internal/errors"
)

// StartClientSpan starts an outbound-call span carrying attrs.
func StartClientSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
}

// EndSpan records err, tagged with its error code when it has one, and ends
// the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := errors.CodeOf(err); code != "" {
			span.SetAttributes(attribute.String("error.type", string(code)))
		}
	}
	span.End()
}
