package daily

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/dailyco-go/internal/otel"
)

var (
	requestsTotal    metric.Int64Counter
	requestsInFlight metric.Int64UpDownCounter
	requestDuration  metric.Float64Histogram
)

func init() {
	f := intotel.NewFactory(intotel.ScopeName, intotel.PrefixClient)

	f.Int64Counter(&requestsTotal, "requests",
		metric.WithDescription("Daily API requests by method, route and outcome"))

	f.Int64UpDownCounter(&requestsInFlight, "requests.inflight",
		metric.WithDescription("Daily API requests waiting for a response"))

	f.Float64Histogram(&requestDuration, "request.duration",
		metric.WithDescription("Daily API request latency"),
		metric.WithUnit("s"))
}
