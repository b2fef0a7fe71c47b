package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"helpmate/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// queryLogger adapts the application slog logger to gorm's logger.Interface.
// Verbosity and the slow-query threshold come from the log section of the
// configuration. Record-not-found is an expected outcome, never logged.
type queryLogger struct {
	base          *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newQueryLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	ql := &queryLogger{
		base:          base,
		level:         logger.Warn,
		slowThreshold: defaultSlowQueryThreshold,
	}

	if cfg != nil {
		if cfg.Env.Debug || cfg.Env.Log.Level == "debug" {
			ql.level = logger.Info
		}
		if cfg.Env.Log.SlowQueryThreshold > 0 {
			ql.slowThreshold = cfg.Env.Log.SlowQueryThreshold
		}
	}

	return ql
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	next := *l
	next.level = level

	return &next
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) printf(ctx context.Context, at logger.LogLevel, lvl slog.Level, msg string, args []any) {
	if l.base == nil || l.level < at {
		return
	}

	l.base.LogAttrs(ctx, lvl, fmt.Sprintf(msg, args...))
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.base == nil || l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.base.LogAttrs(ctx, slog.LevelError, "Query failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.base.LogAttrs(ctx, slog.LevelWarn, "Slow query",
			slog.Duration("threshold", l.slowThreshold),
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case l.level >= logger.Info:
		sql, rows := fc()
		l.base.LogAttrs(ctx, slog.LevelInfo, "Query",
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	}
}
