package http

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	loggerContextKey     contextKey = "logger"
	dateContextKey       contextKey = "date"
	employeeIDContextKey contextKey = "employee_id"
)

// ContextWithLogger returns a derived context carrying the request scoped logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// LoggerFromContext extracts a logger previously attached to the context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerContextKey).(*slog.Logger)
	return logger
}

// ContextWithDate injects the schedule date resolved from the request path.
func ContextWithDate(ctx context.Context, date string) context.Context {
	return context.WithValue(ctx, dateContextKey, date)
}

// DateFromContext extracts a schedule date previously associated with the context.
func DateFromContext(ctx context.Context) (string, bool) {
	date, ok := ctx.Value(dateContextKey).(string)
	return date, ok
}

// ContextWithEmployeeID injects the employee id resolved from the request path.
func ContextWithEmployeeID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, employeeIDContextKey, id)
}

// EmployeeIDFromContext extracts an employee id previously associated with the context.
func EmployeeIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(employeeIDContextKey).(int)
	return id, ok
}
