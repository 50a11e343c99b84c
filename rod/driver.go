package rod

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fwojciec/cencenelec"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Driver implements cencenelec.Driver at compile time.
var _ cencenelec.Driver = (*Driver)(nil)

// abortedReason is the navigation error Chrome reports when a response is
// handed to the download manager instead of being rendered.
const abortedReason = "net::ERR_ABORTED"

// Driver is a single-use browser tab that saves downloads into a directory.
// Each open Driver has its own browser context, so drivers sharing a
// BrowserManager keep separate download directories.
// A Driver is not safe for concurrent use.
type Driver struct {
	manager     *BrowserManager
	downloadDir string
	timeout     time.Duration
	incognito   *rod.Browser
	page        *rod.Page
}

// NewDriver returns a Driver that saves downloads into downloadDir using a
// browser from manager.
func NewDriver(manager *BrowserManager, downloadDir string) *Driver {
	return &Driver{manager: manager, downloadDir: downloadDir}
}

// Open acquires a browser, creates a browser context that saves downloads
// into the download directory and opens a blank tab in it.
func (d *Driver) Open(ctx context.Context) error {
	if d.page != nil {
		return fmt.Errorf("driver already open")
	}

	dir, err := filepath.Abs(d.downloadDir)
	if err != nil {
		return fmt.Errorf("resolving download directory: %w", err)
	}

	browser, err := d.manager.Acquire()
	if err != nil {
		return err
	}

	incognito, err := browser.Context(ctx).Incognito()
	if err != nil {
		d.manager.Release()
		return fmt.Errorf("creating browser context: %w", err)
	}

	err = proto.BrowserSetDownloadBehavior{
		Behavior:         proto.BrowserSetDownloadBehaviorBehaviorAllow,
		BrowserContextID: incognito.BrowserContextID,
		DownloadPath:     dir,
	}.Call(incognito)
	if err != nil {
		_ = incognito.Context(context.Background()).Close()
		d.manager.Release()
		return fmt.Errorf("setting download directory: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Context(context.Background()).Close()
		d.manager.Release()
		return fmt.Errorf("opening page: %w", err)
	}

	d.incognito = incognito
	d.page = page
	return nil
}

// SetPageLoadTimeout bounds each following Navigate call.
func (d *Driver) SetPageLoadTimeout(timeout time.Duration) {
	d.timeout = timeout
}

// Navigate loads url and waits for the page load event. A navigation that
// Chrome turns into a download counts as success.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	if d.page == nil {
		return fmt.Errorf("driver not open")
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	page := d.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		var navErr *rod.NavigationError
		if errors.As(err, &navErr) && navErr.Reason == abortedReason {
			return nil
		}
		return err
	}

	return page.WaitLoad()
}

// Close closes the tab and its browser context and returns the browser to
// the manager. It is a no-op if the driver is not open.
func (d *Driver) Close() error {
	if d.page == nil {
		return nil
	}

	// The page may carry a canceled context from Open
	err := d.page.Context(context.Background()).Close()
	if cerr := d.incognito.Context(context.Background()).Close(); err == nil {
		err = cerr
	}
	d.page = nil
	d.incognito = nil
	d.manager.Release()
	return err
}
