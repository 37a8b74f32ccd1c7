// Package logger provides structured logging setup and context propagation
// helpers for the application's slog loggers.
package logger
