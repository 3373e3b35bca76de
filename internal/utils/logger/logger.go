package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global   *zap.SugaredLogger
	levelVar = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init builds the global logger with the given level ("debug", "info",
// "warn", "error"). An empty or unknown level falls back to info.
func Init(level string) error {
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return err
		}
		levelVar.SetLevel(parsed)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = levelVar
	cfg.DisableStacktrace = true
	z, err := cfg.Build()
	if err != nil {
		return err
	}
	global = z.Sugar()
	zap.ReplaceGlobals(z)
	return nil
}

// SetLevel adjusts the level of an already initialized logger.
func SetLevel(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	levelVar.SetLevel(parsed)
	return nil
}

// Logger returns the global logger. It must return a non-nil
// *SugaredLogger even before Init is called.
func Logger() *zap.SugaredLogger {
	if global == nil {
		return zap.NewNop().Sugar()
	}
	return global
}
