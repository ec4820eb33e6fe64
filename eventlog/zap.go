package eventlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines ZapSink configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// DefaultConfig returns the configuration used by the process-wide log.
// Warn level keeps query-style operations quiet unless something degrades.
func DefaultConfig() Config {
	return Config{
		Level:       "warn",
		Development: false,
		OutputPaths: []string{"stderr"},
	}
}

// DevelopmentConfig returns a verbose console configuration.
func DevelopmentConfig() Config {
	return Config{
		Level:       "debug",
		Development: true,
		OutputPaths: []string{"stderr"},
	}
}

// ZapSink writes events through a zap logger. Levels map to zap levels:
// start to Debug, success to Info, warning to Warn, failure to Error.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink builds a sink from the given configuration. Configuration errors
// fall back to a no-op logger.
func NewZapSink(cfg Config) *ZapSink {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.WarnLevel
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encodingFormat(cfg.Development),
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: !cfg.Development,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return &ZapSink{logger: zap.NewNop()}
	}
	return &ZapSink{logger: logger}
}

// WrapZap builds a sink around an existing zap logger.
func WrapZap(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Append implements Sink.
func (z *ZapSink) Append(e Event) {
	fields := []zap.Field{
		zap.String("op", e.Op),
		zap.Time("at", e.Time),
	}
	switch e.Level {
	case LevelStart:
		z.logger.Debug(e.Message, fields...)
	case LevelSuccess:
		z.logger.Info(e.Message, fields...)
	case LevelWarning:
		z.logger.Warn(e.Message, fields...)
	case LevelFailure:
		z.logger.Error(e.Message, fields...)
	}
}

// encodingFormat returns encoding format based on environment.
func encodingFormat(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

// encoderConfig returns encoder configuration based on environment.
func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		return zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			FunctionKey:    zapcore.OmitKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
}
