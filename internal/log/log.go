package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	apperrors "github.com/olusolaa/config-baseline-auditor/internal/errors"
)

type slogAdapter struct {
	logger *slog.Logger
}

// NewLogger writes to stderr so that reports on stdout stay machine readable.
func NewLogger(cfg Config) (ports.Logger, error) {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

func NewLoggerWithWriter(cfg Config, w io.Writer) (ports.Logger, error) {
	if w == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "log writer cannot be nil")
	}

	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case FormatText, "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, apperrors.NewUserFacing(apperrors.CodeConfigValidation,
			fmt.Sprintf("unsupported log format: %s", cfg.Format), "Supported: text, json")
	}

	return &slogAdapter{logger: slog.New(handler)}, nil
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
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

	var attrs []slog.Attr
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			attrs = append(attrs, slog.String("error_code", appErr.Code.String()))
			if appErr.InternalDetails != "" {
				attrs = append(attrs, slog.String("error_details", appErr.InternalDetails))
			}
			if appErr.WrappedError != nil {
				attrs = append(attrs, slog.String("error_wrapped", appErr.WrappedError.Error()))
			}
			attrs = append(attrs, slog.String("error", appErr.Message))
		} else {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
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

// WithFields attaches fields in key order so output is stable across runs.
func (s *slogAdapter) WithFields(fields map[string]any) ports.Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, slog.Any(k, fields[k]))
	}
	return &slogAdapter{logger: s.logger.With(args...)}
}
