package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "PULSESCAN_LOG_LEVEL"

// Options controls where and how much the logger writes.
type Options struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// When empty, the PULSESCAN_LOG_LEVEL environment variable is consulted;
	// if that is also empty, logging is disabled entirely.
	Level string

	// File is an optional path to a scan log file. When set, log output is
	// appended to the file instead of stdout.
	File string

	// Console additionally mirrors log output to stdout when a file is in use.
	Console bool
}

// Initialize creates the global logger.
// With a zero Options value it checks PULSESCAN_LOG_LEVEL; if neither a level
// nor a file is configured, logging is disabled (silent mode).
func Initialize(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// A log file implies we want output even without an explicit level.
	if level == "" && opts.File != "" {
		level = "debug"
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	outputs := []string{"stdout"}
	if opts.File != "" {
		outputs = []string{opts.File}
		if opts.Console {
			outputs = append(outputs, "stdout")
		}
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	// Customize encoder for better readability
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the PULSESCAN_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for CLI commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize(Options{})
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		// This ensures no unexpected log output in CLI commands
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogProbe logs one protocol exchange with a device
func LogProbe(addr string, direction string, payload string) {
	Debug("Probe message",
		zap.String("addr", addr),
		zap.String("direction", direction),
		zap.String("payload", payload),
	)
}

// LogProbeFailure logs a per-host probe failure. Failures are silent in the
// primary output stream, so this is the only diagnostic trail for them.
func LogProbeFailure(addr string, err error) {
	Debug("Probe failed",
		zap.String("addr", addr),
		zap.Error(err),
	)
}

// LogScanStart logs the beginning of a network sweep
func LogScanStart(network string, targets int) {
	Info("Scanning network",
		zap.String("network", network),
		zap.Int("targets", targets),
	)
}

// LogScanComplete logs the final scan tally
func LogScanComplete(found int, elapsedSecs float64) {
	Info("Scan completed",
		zap.Int("devices_found", found),
		zap.Float64("elapsed_secs", elapsedSecs),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
