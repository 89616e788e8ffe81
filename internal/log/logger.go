package log

import (
	"encoding/json"
	"io"
	//nolint:depguard
	"log"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// for init only
func Fatal(v ...any) {
	log.Fatal(v...)
}

type Logger struct {
	*zap.Logger
	names      []string
	moduleFunc func(names []string) *zap.Logger
}

// Module returns a child logger named after the dotted module path. Its level
// comes from the most specific DAILY_LOG_LEVEL__* key set.
func (l *Logger) Module(name string) *Logger {
	names := make([]string, len(l.names)+1)
	copy(names, l.names)
	names[len(l.names)] = name

	return &Logger{
		names:      names,
		Logger:     l.moduleFunc(names),
		moduleFunc: l.moduleFunc,
	}
}

// NewLogger builds the logger used by binaries. An empty configFile selects
// the console logger on stderr, so stdout stays free for command output.
func NewLogger(configFile string) (*Logger, error) {
	if configFile == "" {
		return NewConsole(os.Stderr), nil
	}
	return loadLoggerFromFile(configFile)
}

func loadLoggerFromFile(configFile string) (*Logger, error) {
	bs, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrap(err, "read log config")
	}

	var cfg zap.Config
	if err := json.Unmarshal(bs, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse log config %s", configFile)
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}

	return &Logger{
		moduleFunc: func(names []string) *zap.Logger {
			return zapLogger.Named(strings.Join(names, "."))
		},
		Logger: zapLogger.Named("main"),
	}, nil
}

// NewConsole writes human readable lines to w.
func NewConsole(w io.Writer) *Logger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName: func(name string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + name + "]")
		},
	}

	encoder := zapcore.NewConsoleEncoder(encCfg)
	writer := zapcore.AddSync(w)

	build := func(lv zapcore.Level) *zap.Logger {
		core := zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(lv))
		return zap.New(core, zap.AddStacktrace(zapcore.FatalLevel))
	}

	level := zapcore.InfoLevel
	if lv, ok := parseLevelFromEnv(LevelEnv); ok {
		level = lv
	}

	return &Logger{
		moduleFunc: func(names []string) *zap.Logger {
			return build(moduleLevel(names)).Named(strings.Join(names, "."))
		},
		Logger: build(level).Named("main"),
	}
}

func NewTest(t *testing.T) *Logger {
	logger := zaptest.NewLogger(t)
	return &Logger{
		Logger: logger,
		moduleFunc: func(names []string) *zap.Logger {
			return logger.Named(strings.Join(names, "."))
		},
	}
}

// NewNop discards everything. It is the library default.
func NewNop() *Logger {
	logger := zap.NewNop()
	return &Logger{
		Logger: logger,
		moduleFunc: func(_ []string) *zap.Logger {
			return logger
		},
	}
}
