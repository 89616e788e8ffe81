package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
	originalEnvFunc func(string) (string, bool)
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) SetupTest() {
	s.originalEnvFunc = envFunc
	envFunc = func(string) (string, bool) { return "", false }
}

func (s *LoggerTestSuite) TearDownTest() {
	envFunc = s.originalEnvFunc
}

func (s *LoggerTestSuite) TestConsoleModuleName() {
	var buf bytes.Buffer
	logger := NewConsole(&buf).Module("Client").Module("HTTP")

	logger.Info("request sent", String("path", "/rooms"))
	s.Require().NoError(logger.Sync())

	out := buf.String()
	s.Contains(out, "[Client.HTTP]")
	s.Contains(out, "request sent")
	s.Contains(out, `"path": "/rooms"`)
}

func (s *LoggerTestSuite) TestConsoleModuleLevel() {
	envFunc = func(key string) (string, bool) {
		if key == "DAILY_LOG_LEVEL__QUIET" {
			return "error", true
		}
		return "", false
	}

	var buf bytes.Buffer
	logger := NewConsole(&buf).Module("Quiet")
	logger.Info("dropped")
	logger.Error("kept")

	s.NotContains(buf.String(), "dropped")
	s.Contains(buf.String(), "kept")
}

func (s *LoggerTestSuite) TestNopModule() {
	logger := NewNop().Module("Anything")
	s.NotNil(logger)
	logger.Info("nothing happens")
}

func (s *LoggerTestSuite) TestNewLoggerMissingFile() {
	_, err := NewLogger("/nonexistent/log.json")
	s.Error(err)
}

func (s *LoggerTestSuite) TestNewLoggerFromFile() {
	path := filepath.Join(s.T().TempDir(), "log.json")
	cfg := `{"level":"debug","encoding":"json","outputPaths":["stderr"],
		"encoderConfig":{"messageKey":"msg","levelKey":"level","nameKey":"logger"}}`
	s.Require().NoError(os.WriteFile(path, []byte(cfg), 0o600))

	logger, err := NewLogger(path)
	s.Require().NoError(err)
	s.Equal("main", logger.Name())
	s.Equal("Client", logger.Module("Client").Name())
}

func (s *LoggerTestSuite) TestNewLoggerBadFile() {
	path := filepath.Join(s.T().TempDir(), "log.json")
	s.Require().NoError(os.WriteFile(path, []byte("{"), 0o600))

	_, err := NewLogger(path)
	s.ErrorContains(err, "parse log config")
}
