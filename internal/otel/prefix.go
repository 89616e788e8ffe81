package otel

// Metric prefixes per component.
const (
	PrefixClient     = "daily.client"
	PrefixMockServer = "daily.mock"
)

// Instrumentation scope shared by the library's meters and tracers.
const ScopeName = "github.com/imtaco/dailyco-go"
