// Package logger provides structured logging for the scribe backend
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// Loggers are constructed once in main and passed down explicitly; there
// is no process-wide mutable logger.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
