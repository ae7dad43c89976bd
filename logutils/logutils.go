package logutils

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	_zapLogger     *zap.Logger
	_initZapLogger sync.Once
)

// ZapLogger returns the shared zap logger used across the library.
// Components derive their own with Named().
func ZapLogger() *zap.Logger {
	_initZapLogger.Do(func() {
		_zapLogger = NewZapLogger(zapcore.InfoLevel, zapcore.Lock(os.Stderr))
	})
	return _zapLogger
}

// NewZapLogger builds a JSON-encoded logger writing entries at or above
// level to the given syncer.
func NewZapLogger(level zapcore.Level, syncer zapcore.WriteSyncer) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, syncer, level))
}
