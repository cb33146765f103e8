package logging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// maxSQLLength caps SQL text in log lines.
const maxSQLLength = 200

// GormLogger routes GORM output through zerolog. Query lines go to debug,
// failures to error. The request logger in ctx is preferred when present.
type GormLogger struct {
	Base zerolog.Logger
}

// NewGormLogger wraps base for use as gorm.Config.Logger.
func NewGormLogger(base zerolog.Logger) logger.Interface {
	return GormLogger{Base: base}
}

func (l GormLogger) from(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if lg := zerolog.Ctx(ctx); lg != nil && lg.GetLevel() != zerolog.Disabled && lg != zerolog.DefaultContextLogger {
			return lg
		}
	}
	return &l.Base
}

// LogMode is a no-op; filtering is done by the zerolog level.
func (l GormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

func (l GormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.from(ctx).Info().Msg(fmt.Sprintf(msg, args...))
}

func (l GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.from(ctx).Warn().Msg(fmt.Sprintf(msg, args...))
}

func (l GormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.from(ctx).Error().Msg(fmt.Sprintf(msg, args...))
}

// Trace is called by GORM after every statement. ErrRecordNotFound is a normal
// "no rows" outcome and is logged at debug.
func (l GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	lg := l.from(ctx)
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		lg.Error().
			Err(err).
			Str("sql", truncateSQL(sql)).
			Int64("rows", rows).
			Dur("duration", elapsed).
			Msg("gorm query error")
		return
	}

	if lg.GetLevel() > zerolog.DebugLevel {
		return
	}
	sql, rows := fc()
	lg.Debug().
		Str("sql", truncateSQL(sql)).
		Int64("rows", rows).
		Dur("duration", elapsed).
		Msg("gorm query")
}

func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	half := (maxSQLLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}
