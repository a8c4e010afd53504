// Package diag provides the leveled logger used across the factorization
// engine, gated by factor.Options.PrintLevel per spec.md §6. The teacher
// logs through the stdlib log package, so there is no teacher analogue
// here; this package builds a zap logger from a constructor keyed off the
// numeric print level instead of a fixed development/production switch.
package diag

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a *zap.SugaredLogger whose level is derived from
// printLevel: <=0 is silent (only logs at Fatal, i.e. effectively never
// used by normal factorization code), 1 logs Info and above, >=2 logs
// Debug and above.
func NewLogger(printLevel int) *zap.SugaredLogger {
	level := zapcore.FatalLevel
	switch {
	case printLevel >= 2:
		level = zapcore.DebugLevel
	case printLevel == 1:
		level = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		// zap.NewDevelopmentConfig().Build() only fails on a bad output
		// path, which this configuration never sets; fall back to a
		// no-op logger rather than panicking out of a library call.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
