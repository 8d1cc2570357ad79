package event

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// zapLoggerAdapter 把 watermill 日志接到全局 zap
type zapLoggerAdapter struct {
	l *zap.Logger
}

// NewWatermillLogger 返回基于 zap 的 watermill LoggerAdapter
func NewWatermillLogger(l *zap.Logger) watermill.LoggerAdapter {
	return &zapLoggerAdapter{l: l}
}

func fieldsToZap(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (a *zapLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.l.Error(msg, append(fieldsToZap(fields), zap.Error(err))...)
}

func (a *zapLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.l.Info(msg, fieldsToZap(fields)...)
}

func (a *zapLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.l.Debug(msg, fieldsToZap(fields)...)
}

func (a *zapLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.l.Debug(msg, fieldsToZap(fields)...)
}

func (a *zapLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zapLoggerAdapter{l: a.l.With(fieldsToZap(fields)...)}
}
