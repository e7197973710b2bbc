package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Component prefixes keep engine, fetcher and server lines apart when
// `archlens serve` interleaves them.
const (
	componentEngine  = "engine"
	componentFetcher = "fetch"
	componentServer  = "server"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// component returns a child logger whose lines carry the given prefix.
func component(l *log.Logger, name string) *log.Logger {
	return l.WithPrefix(name)
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Optimized 120 nodes (3ms)".
// Extra key/value pairs are passed through to the logger.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg+" ("+time.Since(p.start).Round(time.Millisecond).String()+")", keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
