package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/viper"

	"github.com/imtaco/dailyco-go/internal/log"
)

type Retry interface {
	Do(ctx context.Context, operation func() error) error
}

type Config struct {
	// MaxRetries is the number of retries after the first attempt. 0 disables retrying.
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("max_retries"), 0)
	v.SetDefault(p("initial_interval"), "500ms")
	v.SetDefault(p("max_interval"), "10s")
	v.SetDefault(p("max_elapsed_time"), "1m")
}

type Option func(*retryImpl)

// WithRetryable stops retrying as soon as fn reports false for an error.
// Without it every error is retried.
func WithRetryable(fn func(error) bool) Option {
	return func(r *retryImpl) { r.retryable = fn }
}

// WithMaxRetries caps the retries after the first attempt.
func WithMaxRetries(n uint64) Option {
	return func(r *retryImpl) { r.maxRetries = &n }
}

func New(logger *log.Logger, initialInterval, maxInterval, maxElapsedTime time.Duration, opts ...Option) Retry {
	r := &retryImpl{
		logger:          logger,
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
		maxElapsedTime:  maxElapsedTime,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewFromConfig(logger *log.Logger, cfg *Config, opts ...Option) Retry {
	opts = append([]Option{WithMaxRetries(cfg.MaxRetries)}, opts...)
	return New(logger, cfg.InitialInterval, cfg.MaxInterval, cfg.MaxElapsedTime, opts...)
}

type retryImpl struct {
	logger          *log.Logger
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	maxRetries      *uint64
	retryable       func(error) bool
}

func (r *retryImpl) Do(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	var policy backoff.BackOff = b
	if r.maxRetries != nil {
		policy = backoff.WithMaxRetries(b, *r.maxRetries)
	}

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}
		if r.retryable != nil && !r.retryable(err) {
			return backoff.Permanent(err)
		}
		r.logger.Warn("Retry attempt failed",
			log.Int("attempt", attempt),
			log.Error(err))
		return err
	}, backoff.WithContext(policy, ctx))
}
