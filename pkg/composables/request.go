package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/organigramma/organigramma/pkg/constants"
)

// UseLogger returns the request-scoped logger, or a bare one when the
// middleware did not run (CLI entrypoints, tests).
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}
