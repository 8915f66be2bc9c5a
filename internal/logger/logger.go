// Package logger constructs the application's zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger. Debug mode uses the development encoder and
// enables debug-level output; production mode emits JSON at info level.
// Warnings and errors go to stderr, everything else to stdout.
func New(debug bool) *zap.Logger {
	stdoutSyncer := zapcore.Lock(os.Stdout)
	stderrSyncer := zapcore.Lock(os.Stderr)

	lowPriority := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		if debug {
			return level == zapcore.DebugLevel || level == zapcore.InfoLevel
		}
		return level == zapcore.InfoLevel
	})
	highPriority := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= zapcore.WarnLevel
	})

	encCfg := zap.NewProductionEncoderConfig()
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), stdoutSyncer, lowPriority),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), stderrSyncer, highPriority),
	)

	return zap.New(core)
}
