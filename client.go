// Package daily is a client for the Daily video REST API.
//
// The Client in this package only moves JSON over HTTP. Typed operations live
// in the meetingtoken, rooms and recordings packages and take a Doer, so they
// can run against a Client, a test double or the dailytest fake.
package daily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/imtaco/dailyco-go/internal/errors"
	"github.com/imtaco/dailyco-go/internal/log"
	intotel "github.com/imtaco/dailyco-go/internal/otel"
)

//go:generate mockgen -destination=mocks/doer.go -package=mocks github.com/imtaco/dailyco-go Doer

// Doer sends one API request and decodes a 2xx body into out (when non-nil).
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
}

// Request is one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Client is safe for concurrent use.
type Client struct {
	rest    *resty.Client
	baseURL string
	limiter *rate.Limiter
	tracer  trace.Tracer
	logger  *log.Logger
}

type Option func(*Client)

// WithLogger logs each call at debug level under the "DailyClient" module.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger.Module("DailyClient")
	}
}

// WithHTTPClient replaces the underlying http.Client (transport, proxy, timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.rest = resty.NewWithClient(hc)
	}
}

// WithRateLimiter makes every call wait for a token from l first.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(intotel.ScopeName)
	}
}

// New validates the key and builds a client. It performs no I/O.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := validateAPIKey(cfg.APIKey); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf(ErrValidation, "invalid base url %q", baseURL)
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := &Client{
		rest:    resty.New(),
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  otel.Tracer(intotel.ScopeName),
		logger:  log.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rest.
		SetBaseURL(c.baseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if cfg.Timeout > 0 {
		c.rest.SetTimeout(cfg.Timeout)
	}
	return c, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Do(ctx context.Context, req Request, out any) (err error) {
	ctx, span := intotel.StartClientSpan(ctx, c.tracer, "daily "+req.Method+" "+routeOf(req.Path),
		attribute.String("http.request.method", req.Method),
		attribute.String("url.path", req.Path))
	defer func() { intotel.EndSpan(span, err) }()

	requestsInFlight.Add(ctx, 1)
	start := time.Now()
	status, err := c.do(ctx, req, out)
	elapsed := time.Since(start)
	requestsInFlight.Add(ctx, -1)

	attrs := metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.String("route", routeOf(req.Path)),
		attribute.String("outcome", outcomeOf(err)),
	)
	requestsTotal.Add(ctx, 1, attrs)
	requestDuration.Record(ctx, elapsed.Seconds(), attrs)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}

	c.logger.Debug("daily request",
		log.String("method", req.Method),
		log.String("path", req.Path),
		log.Int("status", status),
		log.Duration("elapsed", elapsed),
		log.Error(err))
	return err
}

func (c *Client) do(ctx context.Context, req Request, out any) (int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, errors.Wrap(ErrTransport, err, "rate limiter")
		}
	}

	r := c.rest.R().SetContext(ctx)
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return 0, errors.Wrapf(ErrTransport, err, "%s %s", req.Method, req.Path)
	}

	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		apiErr := newAPIError(resp.StatusCode(), resp.Body())
		return resp.StatusCode(), errors.Wrapf(ErrAPI, apiErr, "%s %s", req.Method, req.Path)
	}

	if out == nil {
		return resp.StatusCode(), nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return resp.StatusCode(), errors.Wrapf(ErrTransport, err, "decode %s %s response", req.Method, req.Path)
	}
	return resp.StatusCode(), nil
}

func validateAPIKey(key string) error {
	if key == "" {
		return errors.New(ErrValidation, "api key is required")
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 0x20 || key[i] > 0x7e {
			return errors.New(ErrValidation, "api key must include only printable ASCII characters")
		}
	}
	return nil
}

// routeOf drops identifiers so span names and metric labels stay bounded:
// "/rooms/abc" -> "/rooms/:id", "/recordings/x/access-link" -> "/recordings/:id/access-link".
func routeOf(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) > 1 {
		segs[1] = ":id"
	}
	return "/" + strings.Join(segs, "/")
}

func outcomeOf(err error) string {
	switch errors.CodeOf(err) {
	case "":
		return "ok"
	case ErrAPI:
		return "api_error"
	default:
		return "transport_error"
	}
}
