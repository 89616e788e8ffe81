// Command dailymock serves the in-memory Daily API imitation over HTTP, for
// local development and integration tests in other languages.
package main

import (
	"context"
	"os"

	"github.com/spf13/viper"

	"github.com/imtaco/dailyco-go/dailytest"
	"github.com/imtaco/dailyco-go/internal/config"
	"github.com/imtaco/dailyco-go/internal/httputil"
	"github.com/imtaco/dailyco-go/internal/log"
	"github.com/imtaco/dailyco-go/internal/otel"
	"github.com/imtaco/dailyco-go/internal/workflow"
)

type MockConfig struct {
	APIKey     string   `mapstructure:"api_key"`
	Domain     string   `mapstructure:"domain"`
	DomainID   string   `mapstructure:"domain_id"`
	SigningKey string   `mapstructure:"signing_key"`
	Rooms      []string `mapstructure:"rooms"`
}

type Config struct {
	App  config.App      `mapstructure:"app"`
	HTTP httputil.Config `mapstructure:"http"`
	Otel otel.Config     `mapstructure:"otel"`
	Mock MockConfig      `mapstructure:"mock"`
}

func loadConfig() (*Config, error) {
	return config.Load(&Config{}, func(v *viper.Viper) {
		v.SetDefault("mock.api_key", dailytest.DefaultAPIKey)
		v.SetDefault("mock.domain", dailytest.DefaultDomain)
		v.SetDefault("mock.domain_id", "")
		v.SetDefault("mock.signing_key", dailytest.DefaultSigningKey)
		v.SetDefault("mock.rooms", []string{})

		config.Setup(v, "app")
		otel.Setup(v, "otel")
		httputil.Setup(v, "http")

		v.SetDefault("otel.service_name", "dailymock")
		v.SetDefault("http.addr", "127.0.0.1:8787")
	})
}

func newServer(cfg *MockConfig, logger *log.Logger) *dailytest.Server {
	opts := []dailytest.Option{
		dailytest.WithAPIKey(cfg.APIKey),
		dailytest.WithSigningKey([]byte(cfg.SigningKey)),
		dailytest.WithLogger(logger),
		dailytest.WithDomain(cfg.Domain, cfg.DomainID),
	}
	s := dailytest.New(opts...)
	for _, name := range cfg.Rooms {
		s.AddRoom(dailytest.Room{Name: name})
	}
	return s
}

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger, err := log.NewLogger(config.App.LogConfigFile)
	if err != nil {
		log.Fatal("Failed to create logger", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	otelShutdown, err := otel.Init(ctx, &config.Otel, logger)
	if err != nil {
		logger.Fatal("Failed to initialize OTEL provider", log.Error(err))
	}

	mock := newServer(&config.Mock, logger.Module("Mock"))
	server := httputil.NewServer(&config.HTTP, mock.Handler())
	if err := server.Bind(); err != nil {
		logger.Fatal("Failed to bind HTTP server", log.Error(err))
	}

	go func() {
		logger.Info("Starting mock Daily API",
			log.String("addr", server.BoundAddr()),
			log.String("prefix", dailytest.PathPrefix),
			log.String("domainId", mock.DomainID()),
			log.Int("seededRooms", len(config.Mock.Rooms)))
		if err := server.Listen(); err != nil {
			logger.Fatal("HTTP server stopped", log.Error(err))
		}
	}()

	cleanup := func(ctx context.Context) error {
		if err := server.Shutdown(ctx); err != nil {
			return err
		}
		return otelShutdown(ctx)
	}
	if err := workflow.WaitGracefulShutdown(ctx, logger.Module("CleanUp"), cleanup, config.App.ShutdownTimeout); err != nil {
		_ = logger.Sync()
		os.Exit(1)
	}
}
