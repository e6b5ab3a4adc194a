// Package logging provides structured logging for pulsescan.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the scanner. Per-host probe failures are
// intentionally absent from the primary output stream; this package is where
// they end up for diagnostics.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (wire payloads, per-host failures)
//   - Info: Normal operations (scan start/finish, devices found)
//   - Warn: Non-fatal issues (malformed messages, late results)
//   - Error: Fatal issues (startup failures)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize(logging.Options{File: "pulsescan.log"}); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When neither a level nor a file is configured, logging is silent so the
// curated scan output stays clean. Set PULSESCAN_LOG_LEVEL to "debug",
// "info", "warn", or "error" to enable console logging without a file.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
