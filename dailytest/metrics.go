package dailytest

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/dailyco-go/internal/otel"
)

var requestsServed metric.Int64Counter

func init() {
	f := intotel.NewFactory(intotel.ScopeName+"/dailytest", intotel.PrefixMockServer)

	f.Int64Counter(&requestsServed, "requests",
		metric.WithDescription("Requests served by the mock API by route and status"))
}
