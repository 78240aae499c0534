package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide zap logger.
func New(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// TemporalAdapter bridges zap to the Temporal SDK's log.Logger interface.
type TemporalAdapter struct {
	l *zap.SugaredLogger
}

// NewTemporalAdapter wraps a zap logger for use with the Temporal client
// and worker.
func NewTemporalAdapter(l *zap.Logger) *TemporalAdapter {
	return &TemporalAdapter{l: l.Sugar()}
}

func (a *TemporalAdapter) Debug(msg string, keyvals ...interface{}) {
	a.l.Debugw(msg, keyvals...)
}

func (a *TemporalAdapter) Info(msg string, keyvals ...interface{}) {
	a.l.Infow(msg, keyvals...)
}

func (a *TemporalAdapter) Warn(msg string, keyvals ...interface{}) {
	a.l.Warnw(msg, keyvals...)
}

func (a *TemporalAdapter) Error(msg string, keyvals ...interface{}) {
	a.l.Errorw(msg, keyvals...)
}
