// Package dailytest runs an in-memory imitation of the Daily REST API.
//
// It implements the observable contract the client relies on: bearer auth,
// the {"error", "info"} failure body, room CRUD with cursors, meeting token
// issuance and lookup (including tokens self-signed with the domain key), and
// recordings. It keeps no state outside the Server value.
package dailytest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/imtaco/dailyco-go/internal/log"
	"github.com/imtaco/dailyco-go/internal/validation/ginvalid"
)

const (
	DefaultAPIKey     = "test-api-key"
	DefaultDomain     = "example"
	DefaultSigningKey = "test-signing-key"

	// PathPrefix is where the API is mounted, mirroring the real /v1 root.
	PathPrefix = "/v1"
)

// Error kinds, as sent in the "error" field.
const (
	kindAuthentication      = "authentication-error"
	kindAuthorizationHeader = "authorization-header-error"
	kindJSONParsing         = "json-parsing-error"
	kindInvalidRequest      = "invalid-request-error"
	kindNotFound            = "not-found"
)

// Failure is a canned response served instead of the next request. Raw,
// when set, is written verbatim in place of the JSON error body.
type Failure struct {
	Status int
	Kind   string
	Info   string
	Raw    string
}

// RecordedRequest is what the server saw, captured before routing.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type Server struct {
	apiKey   string
	domain   string
	domainID string
	secret   []byte
	clock    clockwork.Clock
	logger   *log.Logger
	engine   *gin.Engine

	mu         sync.Mutex
	rooms      map[string]*Room
	roomOrder  []string
	recordings map[uuid.UUID]*Recording
	recOrder   []uuid.UUID
	failures   []Failure
	requests   []RecordedRequest
}

type Option func(*Server)

func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithDomain sets the subdomain used in room URLs and the domain id carried
// by issued tokens. An empty value keeps the default; the default id is random.
func WithDomain(name, id string) Option {
	return func(s *Server) {
		if name != "" {
			s.domain = name
		}
		if id != "" {
			s.domainID = id
		}
	}
}

func WithSigningKey(key []byte) Option {
	return func(s *Server) { s.secret = key }
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Server) { s.clock = c }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func New(opts ...Option) *Server {
	s := &Server{
		apiKey:     DefaultAPIKey,
		domain:     DefaultDomain,
		domainID:   uuid.NewString(),
		secret:     []byte(DefaultSigningKey),
		clock:      clockwork.NewRealClock(),
		logger:     log.NewNop(),
		rooms:      map[string]*Room{},
		recordings: map[uuid.UUID]*Recording{},
	}
	for _, opt := range opts {
		opt(s)
	}

	ginvalid.Setup()
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware("daily-mock"))
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))
	engine.Use(s.record)
	s.engine = engine

	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) APIKey() string     { return s.apiKey }
func (s *Server) DomainID() string   { return s.domainID }
func (s *Server) SigningKey() []byte { return s.secret }

// FailNext queues f; queued failures are served in order, one per request.
func (s *Server) FailNext(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, f)
}

// Requests returns a copy of every request seen so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or false if none arrived.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) setupRoutes() {
	g := s.engine.Group(PathPrefix)
	g.Use(s.injectFailure, s.authenticate)

	g.POST("/rooms", s.createRoom)
	g.GET("/rooms", s.listRooms)
	g.GET("/rooms/:name", s.getRoom)
	g.POST("/rooms/:name", s.updateRoom)
	g.DELETE("/rooms/:name", s.deleteRoom)

	g.POST("/meeting-tokens", s.createToken)
	g.GET("/meeting-tokens/:token", s.getToken)

	g.GET("/recordings", s.listRecordings)
	g.GET("/recordings/:id", s.getRecording)
	g.DELETE("/recordings/:id", s.deleteRecording)
	g.GET("/recordings/:id/access-link", s.recordingAccessLink)

	s.engine.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, kindNotFound, "unknown endpoint "+c.Request.URL.Path)
	})
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()

	s.logger.Debug("mock request",
		log.String("method", c.Request.Method),
		log.String("url", c.Request.URL.String()))

	c.Next()

	requestsServed.Add(c.Request.Context(), 1, metric.WithAttributes(
		attribute.String("route", c.FullPath()),
		attribute.Int("status", c.Writer.Status()),
	))
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	if len(s.failures) == 0 {
		s.mu.Unlock()
		c.Next()
		return
	}
	f := s.failures[0]
	s.failures = s.failures[1:]
	s.mu.Unlock()

	if f.Raw != "" {
		c.Data(f.Status, "text/plain; charset=utf-8", []byte(f.Raw))
		c.Abort()
		return
	}
	abort(c, f.Status, f.Kind, f.Info)
}

func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		abort(c, http.StatusUnauthorized, kindAuthorizationHeader,
			"Authorization header must be of the form 'Bearer <api key>'")
		return
	}
	if token != s.apiKey {
		abort(c, http.StatusUnauthorized, kindAuthentication, "Invalid API key")
		return
	}
	c.Next()
}

func abort(c *gin.Context, status int, kind, info string) {
	body := gin.H{"info": info}
	if kind != "" {
		body["error"] = kind
	}
	c.AbortWithStatusJSON(status, body)
}

// TestServer is a Server listening on a local port.
type TestServer struct {
	*Server
	HTTP *httptest.Server
	// URL is the API base URL, including PathPrefix.
	URL string
}

// NewTestServer starts a Server and stops it when t finishes.
func NewTestServer(t testing.TB, opts ...Option) *TestServer {
	t.Helper()
	s := New(opts...)
	hs := httptest.NewServer(s.Handler())
	t.Cleanup(hs.Close)
	return &TestServer{
		Server: s,
		HTTP:   hs,
		URL:    hs.URL + PathPrefix,
	}
}
