package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger реализует Logger поверх zap.SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger создает production-логгер с выводом в stdout.
// Ошибки синхронизации при завершении игнорируются.
func NewZapLogger() *ZapLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}

	return &ZapLogger{sugar: l.Sugar()}
}

func (z *ZapLogger) Debugf(format string, args ...any) {
	z.sugar.Debugf(format, args...)
}

func (z *ZapLogger) Infof(format string, args ...any) {
	z.sugar.Infof(format, args...)
}

func (z *ZapLogger) Warnf(format string, args ...any) {
	z.sugar.Warnf(format, args...)
}

func (z *ZapLogger) Errorf(err error, format string, args ...any) {
	z.sugar.With(zap.Error(err)).Errorf(format, args...)
}

// Sync сбрасывает буферизованные записи.
func (z *ZapLogger) Sync() error {
	return z.sugar.Sync()
}
