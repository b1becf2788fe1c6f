package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "map-layout-service"

// New - JSON логгер для production, цветной консольный для уровня debug
func New(level string) (*zap.Logger, error) {
	return buildConfig(level).Build(zap.Fields(zap.String("service", serviceName)))
}

func buildConfig(level string) zap.Config {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	if zapLevel == zapcore.DebugLevel {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	return cfg
}

// ForSession - дочерний логгер с идентификатором сессии карты
func ForSession(log *zap.Logger, sessionID string) *zap.Logger {
	return log.With(zap.String("session_id", sessionID))
}
