// Package logging provides structured logging utilities for the vodeposit tooling.
//
// # Overview
//
// This package wraps the standard library slog package with project-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("vodeposit", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("catalogue-importer", "v2.0.0", "debug")
//	logger.Info("importer starting", "type", "continuum-island")
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cli", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug vodeposit validate --type continuum-island islands.xml
//	LOG_LEVEL=error vodeposit import --type continuum-component components.xml
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "file validated",
//	    "module": "vodeposit",
//	    "version": "v1.0.0",
//	    "rows": 1204
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "validator.(*Validator).Validate",
//	        "file": "validator.go",
//	        "line": 145
//	    },
//	    "msg": "validation completed",
//	    "module": "vodeposit",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("vodeposit", version)
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("file imported",
//	    "type", "continuum-island",
//	    "path", path,
//	    "rows", 1204,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("row delivered", "row", i)    // Development/troubleshooting
//	slog.Info("file validated")              // Normal operations
//	slog.Warn("file rejected", "errors", n)  // Potential issues
//	slog.Error("constraints unreadable")     // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to import catalogue",
//	    "error", err,
//	    "path", path,
//	    "runId", runID,
//	)
//
// # Integration
//
// This package is used by:
//   - pkg/cli - CLI command logging
//   - pkg/catalogue - Import orchestration logging
//   - pkg/validator - Traversal summaries at debug level
//
// All components share consistent logging format and configuration.
package logging
