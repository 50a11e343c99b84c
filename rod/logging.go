package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cencenelec"
)

// Ensure LoggingDriver implements cencenelec.Driver.
var _ cencenelec.Driver = (*LoggingDriver)(nil)

// LoggingDriver wraps a Driver with debug logging.
type LoggingDriver struct {
	next   cencenelec.Driver
	logger *slog.Logger
}

// NewLoggingDriver creates a new LoggingDriver.
func NewLoggingDriver(next cencenelec.Driver, logger *slog.Logger) *LoggingDriver {
	return &LoggingDriver{next: next, logger: logger}
}

// Open logs handle acquisition and delegates to the wrapped driver.
func (d *LoggingDriver) Open(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		d.logger.Debug("driver open",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Open(ctx)
}

// SetPageLoadTimeout logs the timeout and delegates to the wrapped driver.
func (d *LoggingDriver) SetPageLoadTimeout(timeout time.Duration) {
	d.logger.Debug("page load timeout", "timeout", timeout)
	d.next.SetPageLoadTimeout(timeout)
}

// Navigate logs the URL being loaded and delegates to the wrapped driver.
func (d *LoggingDriver) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		d.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Navigate(ctx, url)
}

// Close logs handle release and delegates to the wrapped driver.
func (d *LoggingDriver) Close() (err error) {
	defer func() {
		d.logger.Debug("driver close", "err", err)
	}()
	return d.next.Close()
}
