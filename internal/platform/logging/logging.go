// Package logging builds the zap loggers shared by realmkeep processes.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoder.
type Format string

const (
	// FormatConsole writes human-readable lines.
	FormatConsole Format = "console"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Config controls logger construction.
type Config struct {
	Format Format `env:"LOG_FORMAT" envDefault:"console"`
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
}

// New builds a logger named after service.
func New(cfg Config, service string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var logger *zap.Logger
	switch Format(strings.ToLower(strings.TrimSpace(string(cfg.Format)))) {
	case FormatJSON:
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = zcfg.Build()
		if err != nil {
			return nil, fmt.Errorf("build json logger: %w", err)
		}
	case FormatConsole, "":
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		logger = zap.New(
			zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level),
			zap.AddCaller(),
		)
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	if service = strings.TrimSpace(service); service != "" {
		logger = logger.Named(service).With(zap.String("service", service))
	}
	return logger, nil
}
