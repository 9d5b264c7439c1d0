// Package logging provides a minimal logging interface and adapters.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that library packages use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", os.Stderr)
//	client := engine.NewClient(projectID, location, tokens, func(o *engine.Options) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal so callers can plug
// any structured logger.
package logging
