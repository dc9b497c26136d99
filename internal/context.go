package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextTimezoneKey ctxKey = "timezone"

// TimezoneFromContext returns the response timezone requested by the caller, or nil when none was given.
func TimezoneFromContext(ctx context.Context) *time.Location {
	if ctx == nil {
		return nil
	}
	if loc, ok := ctx.Value(ContextTimezoneKey).(*time.Location); ok {
		return loc
	}
	return nil
}

func ContextWithTimezone(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, ContextTimezoneKey, loc)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
