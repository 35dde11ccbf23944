package ports

import "context"

// Logger is the logging surface every component receives. Implementations
// also attach fields carried on ctx, such as the request ID.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, err error, format string, args ...any)
	// WithFields returns a logger that adds fields to every record.
	WithFields(fields map[string]any) Logger
}
