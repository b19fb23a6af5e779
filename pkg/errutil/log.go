// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// Log writes err at the given level with structured context if it's an oops error.
// For oops errors, it extracts the message, code and context attributes.
// For standard errors, it logs the error string.
func Log(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, err error) {
	if !logger.Enabled(ctx, level) {
		return
	}
	attrs := []any{"error", err.Error()}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := oopsErr.Code(); code != nil && code != "" {
			attrs = append(attrs, "code", code)
		}
		if errCtx := oopsErr.Context(); len(errCtx) > 0 {
			attrs = append(attrs, "context", errCtx)
		}
	}
	logger.Log(ctx, level, msg, attrs...)
}

// LogError logs err at error level.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	Log(ctx, logger, slog.LevelError, msg, err)
}
