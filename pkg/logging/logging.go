// Package logging carries a logr.Logger through context, implementing the
// core's Logger collaborator contract (start/end-action, log-line) without
// the core depending on any concrete backend.
package logging

import (
	"context"

	"github.com/go-logr/logr"
)

// IntoContext returns a copy of ctx carrying logger.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// FromContext returns the logger carried by ctx, or logr.Discard() if none
// was set — the core never depends on a logger's presence for correctness.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

// StartAction logs the beginning of a named unit of work and returns a
// function that logs its end, capturing success/failure and letting
// callers defer the end call at the action's call site:
//
//	end := logging.StartAction(ctx, "create", "resource", id)
//	defer end(&err)
func StartAction(ctx context.Context, action string, keysAndValues ...any) func(errp *error) {
	logger := FromContext(ctx).WithValues(keysAndValues...)
	logger.V(1).Info("start", "action", action)
	return func(errp *error) {
		if errp != nil && *errp != nil {
			logger.Error(*errp, "end", "action", action)
			return
		}
		logger.V(1).Info("end", "action", action)
	}
}
