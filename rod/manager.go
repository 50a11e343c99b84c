// Package rod provides browser automation for downloads using go-rod.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxHandles is the default number of released handles before the
// browser is recycled.
const DefaultMaxHandles = 25

// BrowserManager owns a Chrome process shared by download handles and
// recycles it after a number of handles have been released. Chrome keeps
// memory from finished downloads and pages, so a long harvest run restarts it
// periodically. The browser is only recycled while no handle is active.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	released   int64
	active     int64
	maxHandles int64
	headless   bool
	bin        string
	mu         sync.Mutex
	closed     atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxHandles sets the number of released handles before the browser is
// recycled. Defaults to DefaultMaxHandles.
func WithMaxHandles(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxHandles = n
	}
}

// WithHeadless controls whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithBrowserBin sets the Chrome binary to launch instead of the one the
// launcher finds or downloads.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager launches Chrome and returns its manager.
// Close must be called when the BrowserManager is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxHandles: DefaultMaxHandles,
		headless:   true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// Acquire returns the current browser for a new handle, recycling it first
// if enough handles have been released and none is active. Every Acquire
// must be paired with a Release.
func (bm *BrowserManager) Acquire() (*rod.Browser, error) {
	if bm.closed.Load() {
		return nil, fmt.Errorf("browser manager closed")
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	if atomic.LoadInt64(&bm.active) == 0 && atomic.LoadInt64(&bm.released) >= bm.maxHandles {
		bm.recycleBrowser()
	}

	atomic.AddInt64(&bm.active, 1)
	return bm.browser, nil
}

// Release marks a handle obtained from Acquire as finished.
func (bm *BrowserManager) Release() {
	atomic.AddInt64(&bm.active, -1)
	atomic.AddInt64(&bm.released, 1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(bm.headless)
	if bm.bin != "" {
		lnchr = lnchr.Bin(bm.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (bm *BrowserManager) closeBrowser() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one.
// If launching the new browser fails, the old browser is kept.
// Must be called with mu held.
func (bm *BrowserManager) recycleBrowser() {
	oldBrowser := bm.browser
	oldLauncher := bm.launcher
	bm.browser = nil
	bm.launcher = nil

	if err := bm.launchBrowser(); err != nil {
		bm.browser = oldBrowser
		bm.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&bm.released, 0)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
