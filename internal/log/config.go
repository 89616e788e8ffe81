package log

import (
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap/zapcore"
)

// LevelEnv is the root env key. Module overrides append "__<MODULE>" per
// name segment, e.g. DAILY_LOG_LEVEL__CLIENT__HTTP.
const LevelEnv = "DAILY_LOG_LEVEL"

var (
	envFunc = env
)

func parseLevel(s string) (zapcore.Level, bool) {
	var lvl zapcore.Level
	err := lvl.Set(strings.ToLower(s))
	if err != nil {
		return zapcore.InfoLevel, false
	}
	return lvl, true
}

func env(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func parseLevelFromEnv(key string) (zapcore.Level, bool) {
	v, ok := envFunc(key)
	if !ok {
		return zapcore.InfoLevel, false
	}
	return parseLevel(v)
}

// levelKeys lists env keys from the most specific module path to the root key.
func levelKeys(names []string) []string {
	skNames := make([]string, len(names))
	for i, n := range names {
		skNames[i] = strcase.ToScreamingSnake(n)
	}

	keys := make([]string, 0, len(names)+1)
	for i := len(skNames); i > 0; i-- {
		keys = append(keys, LevelEnv+"__"+strings.Join(skNames[:i], "__"))
	}
	return append(keys, LevelEnv)
}

func moduleLevel(names []string) zapcore.Level {
	for _, k := range levelKeys(names) {
		if lv, ok := parseLevelFromEnv(k); ok {
			return lv
		}
	}
	return zapcore.InfoLevel
}
