package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cencenelec"
)

// Ensure LoggingDownloader implements cencenelec.Downloader.
var _ cencenelec.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   cencenelec.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next cencenelec.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the outcome.
func (d *LoggingDownloader) Download(ctx context.Context, driver cencenelec.Driver, dir, url string) (name string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil || name == "" {
			level = slog.LevelWarn
		}
		d.logger.Log(ctx, level, "download",
			"url", url,
			"dir", dir,
			"file", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, driver, dir, url)
}
