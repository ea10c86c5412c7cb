// Package logging provides structured logging utilities for the frontdesk application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (caller phone anonymization)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "appointment.create")
//	logger.Info("appointment created",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("caller identified",
//	    logging.CallerHash(phoneNumber))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Caller phone numbers are hashed to prevent PII leakage while allowing correlation
//   - Credentials are never logged directly
package logging
