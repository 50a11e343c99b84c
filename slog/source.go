// Package slog provides log/slog decorators for cencenelec services.
package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/cencenelec"
)

// Ensure LoggingSource implements cencenelec.Source.
var _ cencenelec.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source and logs each discovery once it ends.
type LoggingSource struct {
	next   cencenelec.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next cencenelec.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the host, the number of
// documents yielded and the first error, if any.
func (s *LoggingSource) Discover(ctx context.Context, host string) iter.Seq2[cencenelec.RawDocument, error] {
	return func(yield func(cencenelec.RawDocument, error) bool) {
		var count int
		var err error
		defer func(begin time.Time) {
			s.logger.Info("discover",
				"host", host,
				"count", count,
				"duration", time.Since(begin),
				"err", err,
			)
		}(time.Now())

		for raw, rerr := range s.next.Discover(ctx, host) {
			if rerr != nil {
				err = rerr
			} else {
				count++
			}
			if !yield(raw, rerr) {
				return
			}
		}
	}
}
