package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

// RunIDKey carries the sanitization run ID through a context.
const RunIDKey ctxKey = "run_id"

type Logger struct {
	*zap.Logger
}

func NewLogger(level string) (*Logger, error) {
	config := zap.NewProductionConfig()

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{logger}, nil
}

func (l *Logger) WithRunID(ctx context.Context) *zap.Logger {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return l.With(zap.String("run_id", runID))
	}
	return l.Logger
}
