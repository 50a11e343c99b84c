package cencenelec

import (
	"context"
	"time"
)

// Driver is a browser-automation handle. A Driver is acquired with Open and
// must be released with Close once the caller is done with it.
type Driver interface {
	// Open acquires the underlying browser resources.
	Open(ctx context.Context) error

	// SetPageLoadTimeout bounds subsequent navigations.
	SetPageLoadTimeout(d time.Duration)

	// Navigate loads url in the handle's page.
	Navigate(ctx context.Context, url string) error

	// Close releases the handle. It is safe to call after a failed Open.
	Close() error
}

// Downloader fetches a resource through a Driver and waits until the file
// appears in a directory.
type Downloader interface {
	// Download returns the name of the downloaded file inside dir, or an
	// empty string if the path appeared but is not a regular file.
	Download(ctx context.Context, driver Driver, dir, url string) (string, error)
}
