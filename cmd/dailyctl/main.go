// Command dailyctl manages rooms, meeting tokens and recordings from the
// command line.
//
//	dailyctl [global flags] <rooms|tokens|recordings> <command> [flags] [args]
//
// Settings come from DAILY_* environment variables and are overridden by
// flags. Results are printed to stdout as JSON.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	daily "github.com/imtaco/dailyco-go"
	"github.com/imtaco/dailyco-go/internal/config"
	"github.com/imtaco/dailyco-go/internal/log"
	"github.com/imtaco/dailyco-go/internal/retry"
)

type Config struct {
	App         config.App   `mapstructure:"app"`
	Daily       daily.Config `mapstructure:"daily"`
	Retry       retry.Config `mapstructure:"retry"`
	Concurrency int          `mapstructure:"concurrency"`
}

// flagKeys maps config keys to global flag names.
var flagKeys = map[string]string{
	"app.log_config_file": "log-config",
	"daily.api_key":       "api-key",
	"daily.base_url":      "base-url",
	"daily.timeout":       "timeout",
	"daily.domain_id":     "domain-id",
	"daily.signing_key":   "signing-key",
	"retry.max_retries":   "retries",
	"concurrency":         "concurrency",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dailyctl", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.String("log-config", "", "zap JSON config file; console on stderr when empty")
	fs.String("api-key", "", "API key (DAILY_API_KEY)")
	fs.String("base-url", daily.DefaultBaseURL, "API base URL (DAILY_BASE_URL)")
	fs.Duration("timeout", 0, "per-request timeout, 0 for none (DAILY_TIMEOUT)")
	fs.String("domain-id", "", "domain id for self-signed tokens (DAILY_DOMAIN_ID)")
	fs.String("signing-key", "", "domain key for self-signed tokens (DAILY_SIGNING_KEY)")
	fs.Uint64("retries", 0, "retries for throttled, failed or unreachable requests")
	fs.Int("concurrency", 4, "parallel requests for bulk deletes")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: dailyctl [flags] <rooms|tokens|recordings> <command> [flags] [args]")
		fmt.Fprintln(fs.Output(), "\ncommands:")
		for _, name := range commandNames() {
			fmt.Fprintln(fs.Output(), "  "+name)
		}
		fmt.Fprintln(fs.Output(), "\nflags:")
		fs.PrintDefaults()
	}
	return fs
}

func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	return config.LoadWithFlags(&Config{}, fs, flagKeys, func(v *viper.Viper) {
		config.Setup(v, "app")
		daily.Setup(v, "daily")
		retry.Setup(v, "retry")
		v.SetDefault("concurrency", 4)
	})
}

// configFields describes cfg for logs. Credentials are reported as set or
// unset only.
func configFields(cfg *Config) []log.Field {
	return []log.Field{
		log.Bool("api_key_set", cfg.Daily.APIKey != ""),
		log.Bool("signing_key_set", cfg.Daily.SigningKey != ""),
		log.String("base_url", cfg.Daily.BaseURL),
		log.String("domain_id", cfg.Daily.DomainID),
		log.Duration("timeout", cfg.Daily.Timeout),
		log.Uint64("retries", cfg.Retry.MaxRetries),
		log.Int("concurrency", cfg.Concurrency),
	}
}

func main() {
	fs := newFlagSet()
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	config, err := loadConfig(fs)
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger, err := log.NewLogger(config.App.LogConfigFile)
	if err != nil {
		log.Fatal("Failed to create logger", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("Loaded configuration", configFields(config)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newCLI(config, logger, os.Stdout)
	if err := c.run(ctx, fs.Args()); err != nil {
		if err == errUsage {
			fs.Usage()
			os.Exit(2)
		}
		logger.Error("Command failed", log.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
