package logsvc

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/trezcool/masomo-apply/core"
)

// ZapLogger implements core.Logger on zap.
type ZapLogger struct {
	l *zap.Logger
}

var _ core.Logger = (*ZapLogger)(nil)

// NewZapLogger builds a zap logger: "json" format for production, console otherwise.
func NewZapLogger(levelStr, format string) *ZapLogger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewExample()
	}
	return &ZapLogger{l: l}
}

// NewNopLogger creates a logger that doesn't output anything.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{l: zap.NewNop()}
}

// NewTestLogger creates a logger that outputs to t.
func NewTestLogger(t testing.TB) *ZapLogger {
	return &ZapLogger{l: zaptest.NewLogger(t)}
}

func (z *ZapLogger) Zap() *zap.Logger { return z.l }

func (z *ZapLogger) Sync() error { return z.l.Sync() }

func (z *ZapLogger) Debug(msg string, args ...interface{}) { z.l.Debug(msg, fields(args)...) }
func (z *ZapLogger) Info(msg string, args ...interface{})  { z.l.Info(msg, fields(args)...) }
func (z *ZapLogger) Warn(msg string, args ...interface{})  { z.l.Warn(msg, fields(args)...) }
func (z *ZapLogger) Error(msg string, args ...interface{}) { z.l.Error(msg, fields(args)...) }
func (z *ZapLogger) Fatal(msg string, args ...interface{}) { z.l.Fatal(msg, fields(args)...) }

// expected fmt: error | map[string]interface{} | anything else
func fields(args []interface{}) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(args))
	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			out = append(out, zap.Error(a))
		case map[string]interface{}:
			for k, v := range a {
				out = append(out, zap.Any(k, v))
			}
		default:
			out = append(out, zap.Any(fmt.Sprintf("arg%d", i), a))
		}
	}
	return out
}
