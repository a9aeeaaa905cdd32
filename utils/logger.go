package utils

import (
	"context"

	"github.com/sirupsen/logrus"

	"mealprep/globals"
)

// WithLogger attaches a request-scoped logger to ctx.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, globals.LoggerKey, log)
}

// LoggerFrom returns the logger attached to ctx, or the standard logger.
func LoggerFrom(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(globals.LoggerKey).(logrus.FieldLogger); ok && log != nil {
		return log
	}
	return logrus.StandardLogger()
}
