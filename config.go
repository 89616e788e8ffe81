package daily

import (
	"time"

	"github.com/spf13/viper"

	"github.com/imtaco/dailyco-go/internal/config"
)

const (
	DefaultBaseURL   = "https://api.daily.co/v1/"
	DefaultUserAgent = "dailyco-go"
)

// Config holds client settings. Timeout zero means no client-side timeout.
// DomainID and SigningKey are only needed to self-sign meeting tokens.
type Config struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
	DomainID   string        `mapstructure:"domain_id"`
	SigningKey string        `mapstructure:"signing_key"`
}

// Setup registers defaults under prefix, which also makes the keys visible to
// env lookup (prefix "daily" reads DAILY_API_KEY, DAILY_BASE_URL, ...).
func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("api_key"), "")
	v.SetDefault(p("base_url"), DefaultBaseURL)
	v.SetDefault(p("timeout"), "0s")
	v.SetDefault(p("user_agent"), DefaultUserAgent)
	v.SetDefault(p("domain_id"), "")
	v.SetDefault(p("signing_key"), "")
}

// LoadConfig reads DAILY_* environment variables.
func LoadConfig() (*Config, error) {
	var c struct {
		Daily Config `mapstructure:"daily"`
	}
	if _, err := config.Load(&c, func(v *viper.Viper) { Setup(v, "daily") }); err != nil {
		return nil, err
	}
	return &c.Daily, nil
}
