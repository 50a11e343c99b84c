// Package fs provides file-system backed helpers: waiting for browser
// downloads to land on disk and exporting documents as Markdown files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/cencenelec"
)

// Download defaults.
const (
	DefaultPageLoadTimeout = 40 * time.Second
	DefaultSettleDelay     = 1 * time.Second
	DefaultPollInterval    = 1 * time.Second
)

// Ensure DownloadCompleter implements cencenelec.Downloader at compile time.
var _ cencenelec.Downloader = (*DownloadCompleter)(nil)

// DownloadCompleter navigates a driver to a file URL and blocks until the
// browser has written the file into the download directory.
type DownloadCompleter struct {
	// PageLoadTimeout is applied to the driver before navigation.
	PageLoadTimeout time.Duration

	// SettleDelay is the pause after navigation before interacting.
	SettleDelay time.Duration

	// PollInterval is the time between file existence checks.
	PollInterval time.Duration

	// Timeout bounds the wait for the file. Zero waits until ctx is done.
	Timeout time.Duration

	// RetryDelays are the pauses between navigation attempts. Navigation is
	// attempted len(RetryDelays)+1 times; nil means a single attempt.
	RetryDelays []time.Duration

	// Interact runs site-specific steps (cookie banners, forms) after the
	// page settles. It may be nil.
	Interact func(ctx context.Context, driver cencenelec.Driver) error
}

// NewDownloadCompleter returns a DownloadCompleter with default timings and
// no wait timeout.
func NewDownloadCompleter() *DownloadCompleter {
	return &DownloadCompleter{
		PageLoadTimeout: DefaultPageLoadTimeout,
		SettleDelay:     DefaultSettleDelay,
		PollInterval:    DefaultPollInterval,
	}
}

// Download acquires driver, navigates to url and waits for the file named
// after the last path segment of url to appear in dir. The driver is
// released on every return path once it has been opened.
//
// It returns the file name, or an empty string if the path exists but is
// not a regular file. If Timeout elapses first, it returns an ETIMEOUT error.
func (c *DownloadCompleter) Download(ctx context.Context, driver cencenelec.Driver, dir, url string) (name string, err error) {
	if err := driver.Open(ctx); err != nil {
		return "", fmt.Errorf("opening driver: %w", err)
	}
	defer func() {
		if cerr := driver.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing driver: %w", cerr)
		}
	}()

	driver.SetPageLoadTimeout(c.PageLoadTimeout)
	if err := c.navigate(ctx, driver, url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}

	if err := sleep(ctx, c.SettleDelay); err != nil {
		return "", err
	}

	if c.Interact != nil {
		if err := c.Interact(ctx, driver); err != nil {
			return "", fmt.Errorf("interacting with %s: %w", url, err)
		}
	}

	name = FileName(url)
	path := filepath.Join(dir, name)
	if err := c.waitFor(ctx, path); err != nil {
		return "", err
	}

	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return "", nil
	}
	return name, nil
}

// BackoffDelays returns n retry delays doubling from one second: 1s, 2s, 4s...
func BackoffDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// navigate loads url, retrying after each of RetryDelays on failure.
func (c *DownloadCompleter) navigate(ctx context.Context, driver cencenelec.Driver, url string) error {
	var lastErr error
	for attempt := 0; attempt <= len(c.RetryDelays); attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.RetryDelays[attempt-1]); err != nil {
				return err
			}
		}

		lastErr = driver.Navigate(ctx, url)
		if lastErr == nil {
			return nil
		}

		// Don't retry once the caller gave up
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

// waitFor polls until path exists, the timeout elapses or ctx is done.
// Only the completer's own timeout is reported as ETIMEOUT; a deadline set
// by the caller surfaces as the caller's context error.
func (c *DownloadCompleter) waitFor(ctx context.Context, path string) error {
	var timeoutErr error
	if c.Timeout > 0 {
		timeoutErr = cencenelec.Errorf(cencenelec.ETIMEOUT, "file %s did not appear within %s", filepath.Base(path), c.Timeout)

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, c.Timeout, timeoutErr)
		defer cancel()
	}

	interval := c.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !exists(path) {
		select {
		case <-ctx.Done():
			if timeoutErr != nil && context.Cause(ctx) == timeoutErr {
				return timeoutErr
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// FileName returns the last "/"-separated segment of url.
func FileName(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
