package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger emits one JSON line per event with a stable shape:
// timestamp, level, service, hostname, request_id, action, message.
// Log aggregation keys on the action field, so every call site passes a
// short snake_case action name.
type Logger struct {
	zl *zap.Logger
}

func New(service string) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		zapcore.DebugLevel,
	)

	hostname, _ := os.Hostname()
	zl := zap.New(core).With(
		zap.String("service", service),
		zap.String("hostname", hostname),
	)

	return &Logger{zl: zl}
}

func (l *Logger) Debug(requestID, action, message string) {
	l.zl.Debug(message, zap.String("request_id", requestID), zap.String("action", action))
}

func (l *Logger) Info(requestID, action, message string) {
	l.zl.Info(message, zap.String("request_id", requestID), zap.String("action", action))
}

func (l *Logger) Warn(requestID, action, message string) {
	l.zl.Warn(message, zap.String("request_id", requestID), zap.String("action", action))
}

func (l *Logger) Error(requestID, action, message string, err error) {
	l.zl.Error(message, zap.String("request_id", requestID), zap.String("action", action), zap.Error(err))
}

func (l *Logger) Sync() {
	_ = l.zl.Sync()
}
