package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
)

type testConfig struct {
	App  App `mapstructure:"app"`
	Mock struct {
		APIKey string `mapstructure:"api_key"`
		Domain string `mapstructure:"domain"`
	} `mapstructure:"mock"`
}

func setupTest(v *viper.Viper) {
	Setup(v, "app")
	v.SetDefault("mock.api_key", "")
	v.SetDefault("mock.domain", "example")
}

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	c, err := Load(&testConfig{}, setupTest)
	s.Require().NoError(err)
	s.Equal(10*time.Second, c.App.ShutdownTimeout)
	s.Empty(c.App.LogConfigFile)
	s.Equal("example", c.Mock.Domain)
}

func (s *ConfigTestSuite) TestEnvOverrides() {
	s.T().Setenv("MOCK_API_KEY", "secret")
	s.T().Setenv("APP_SHUTDOWN_TIMEOUT", "3s")

	c, err := Load(&testConfig{}, setupTest)
	s.Require().NoError(err)
	s.Equal("secret", c.Mock.APIKey)
	s.Equal(3*time.Second, c.App.ShutdownTimeout)
}

func (s *ConfigTestSuite) TestFlagsWinOverEnv() {
	s.T().Setenv("MOCK_DOMAIN", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("mock.domain", "", "")
	s.Require().NoError(flags.Parse([]string{"--mock.domain=from-flag"}))

	c, err := LoadWithFlags(&testConfig{}, flags, nil, setupTest)
	s.Require().NoError(err)
	s.Equal("from-flag", c.Mock.Domain)
}

func (s *ConfigTestSuite) TestUnchangedFlagKeepsEnv() {
	s.T().Setenv("MOCK_DOMAIN", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("mock.domain", "flag-default", "")
	s.Require().NoError(flags.Parse(nil))

	c, err := LoadWithFlags(&testConfig{}, flags, nil, setupTest)
	s.Require().NoError(err)
	s.Equal("from-env", c.Mock.Domain)
}

func (s *ConfigTestSuite) TestFlagKeys() {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-key", "", "")
	flags.Duration("grace", 0, "")
	s.Require().NoError(flags.Parse([]string{"--api-key", "k", "--grace", "2s"}))

	c, err := LoadWithFlags(&testConfig{}, flags, map[string]string{
		"mock.api_key":         "api-key",
		"app.shutdown_timeout": "grace",
	}, setupTest)
	s.Require().NoError(err)
	s.Equal("k", c.Mock.APIKey)
	s.Equal(2*time.Second, c.App.ShutdownTimeout)
}

func (s *ConfigTestSuite) TestFlagKeysUnknownFlag() {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	_, err := LoadWithFlags(&testConfig{}, flags, map[string]string{"mock.api_key": "nope"}, setupTest)
	s.Error(err)
}
