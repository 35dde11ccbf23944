package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	apperrors "github.com/olusolaa/cloud-resource-api/internal/errors"
)

type slogAdapter struct {
	logger *slog.Logger
}

func NewLogger(cfg Config) (ports.Logger, error) {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

// NewLoggerWithWriter is NewLogger with an explicit output.
func NewLoggerWithWriter(cfg Config, w io.Writer) (ports.Logger, error) {
	level, err := cfg.Level.slogLevel()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigValidation, err.Error())
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case FormatText, "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, apperrors.New(apperrors.CodeConfigValidation, fmt.Sprintf("unknown log format '%s'", cfg.Format))
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With(slog.String("service", cfg.Service))
	}
	return &slogAdapter{logger: logger}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() ports.Logger {
	return &slogAdapter{logger: slog.New(slog.DiscardHandler)}
}

func errorAttrs(err error) []slog.Attr {
	appErr, ok := apperrors.As(err)
	if !ok {
		return []slog.Attr{slog.String("error", err.Error())}
	}
	attrs := []slog.Attr{
		slog.String("error_code", appErr.Code.String()),
		slog.Int("error_status", apperrors.HTTPStatus(appErr)),
	}
	if appErr.InternalDetails != "" {
		attrs = append(attrs, slog.String("error_details", appErr.InternalDetails))
	}
	if appErr.WrappedError != nil {
		return append(attrs, slog.String("error_wrapped", appErr.WrappedError.Error()))
	}
	return append(attrs, slog.String("error", appErr.Message))
}

func fieldAttrs(fields map[string]any) []slog.Attr {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

func (s *slogAdapter) log(ctx context.Context, level slog.Level, err error, format string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.logger.Enabled(ctx, level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	attrs := fieldAttrs(FieldsFromContext(ctx))
	if err != nil {
		attrs = append(attrs, errorAttrs(err)...)
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *slogAdapter) Debugf(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelDebug, nil, format, args...)
}

func (s *slogAdapter) Infof(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelInfo, nil, format, args...)
}

func (s *slogAdapter) Warnf(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelWarn, nil, format, args...)
}

func (s *slogAdapter) Errorf(ctx context.Context, err error, format string, args ...any) {
	s.log(ctx, slog.LevelError, err, format, args...)
}

func (s *slogAdapter) WithFields(fields map[string]any) ports.Logger {
	attrs := fieldAttrs(fields)
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return &slogAdapter{logger: s.logger.With(args...)}
}
