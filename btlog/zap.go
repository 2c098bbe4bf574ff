package btlog

import "go.uber.org/zap"

// zapLogger wraps a zap.Logger to implement Logger.
type zapLogger struct {
	logger *zap.Logger
}

// NewZap creates a Logger from a zap.Logger.
func NewZap(logger *zap.Logger) Logger {
	return &zapLogger{logger: logger}
}

func (z *zapLogger) Error(msg string, args ...any) {
	z.logger.Sugar().Errorw(msg, args...)
}

func (z *zapLogger) Warn(msg string, args ...any) {
	z.logger.Sugar().Warnw(msg, args...)
}

func (z *zapLogger) Info(msg string, args ...any) {
	z.logger.Sugar().Infow(msg, args...)
}
