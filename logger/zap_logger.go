package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is the zap-backed Logger used by the simulator and systems.
type ZapLogger struct {
	zap *zap.Logger
}

// NewZapLogger builds a zap logger from cfg. Unknown levels fall back to info.
func NewZapLogger(cfg Config) (*ZapLogger, error) {
	z, err := zapConfig(cfg).Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("logger: build zap: %w", err)
	}
	return &ZapLogger{zap: z}, nil
}

// NewFromZap adapts an existing zap logger.
func NewFromZap(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{zap: z}
}

func zapConfig(cfg Config) zap.Config {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	// Cooldowns and regen intervals read better as "2s" than as nanoseconds.
	zc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zc.Encoding = "json"
	if cfg.Format == "console" {
		zc.Encoding = "console"
	}

	zc.Sampling = nil
	if cfg.EnableSampling {
		initial, thereafter := cfg.SampleInitial, cfg.SampleThereafter
		if initial <= 0 {
			initial = 100
		}
		if thereafter <= 0 {
			thereafter = 1000
		}
		zc.Sampling = &zap.SamplingConfig{Initial: initial, Thereafter: thereafter}
	}
	return zc
}

func zapField(f Field) zap.Field {
	switch v := f.Value.(type) {
	case string:
		return zap.String(f.Key, v)
	case int:
		return zap.Int(f.Key, v)
	case int64:
		return zap.Int64(f.Key, v)
	case uint64:
		return zap.Uint64(f.Key, v)
	case float64:
		return zap.Float64(f.Key, v)
	case bool:
		return zap.Bool(f.Key, v)
	case time.Duration:
		return zap.Duration(f.Key, v)
	case time.Time:
		return zap.Time(f.Key, v)
	case []string:
		return zap.Strings(f.Key, v)
	case error:
		return zap.NamedError(f.Key, v)
	case fmt.Stringer:
		// Entities, actor ids and controller states.
		return zap.Stringer(f.Key, v)
	default:
		return zap.Any(f.Key, v)
	}
}

func zapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zapField(f)
	}
	return out
}

func (l *ZapLogger) Debug(msg string, fields ...Field) {
	l.zap.Debug(msg, zapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields ...Field) {
	l.zap.Info(msg, zapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields ...Field) {
	l.zap.Warn(msg, zapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, fields ...Field) {
	l.zap.Error(msg, zapFields(fields)...)
}

func (l *ZapLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZapLogger{zap: l.zap.With(zapFields(fields)...)}
}

func (l *ZapLogger) Sync() error {
	return l.zap.Sync()
}
