// Package collect runs document collection passes. A pass walks a
// cencenelec.Source, normalizes every raw description into a
// cencenelec.Document and hands the resulting slice to the caller.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/cencenelec"
)

// DefaultDelay is the courtesy pause after each discovered document.
const DefaultDelay = 500 * time.Millisecond

var _ cencenelec.Collector = (*Collector)(nil)

// Collector accumulates documents during a single pass.
// Collector is not safe for concurrent use.
type Collector struct {
	source cencenelec.Source
	host   string
	delay  time.Duration
	logger *slog.Logger
	now    func() time.Time

	docs []*cencenelec.Document
}

// Option configures a Collector.
type Option func(*Collector)

// WithHost sets the host documents are discovered on and linked to.
// Defaults to cencenelec.Host.
func WithHost(host string) Option {
	return func(c *Collector) {
		c.host = host
	}
}

// WithDelay sets the pause after each document. Zero disables it.
// Defaults to DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Collector) {
		c.delay = d
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithClock sets the function used for documents without a publication date.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// NewCollector returns a Collector reading from source.
func NewCollector(source cencenelec.Source, opts ...Option) *Collector {
	c := &Collector{
		source: source,
		host:   cencenelec.Host,
		delay:  DefaultDelay,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("collector", "CEN_CENELEC")

	c.logger.Debug("parser init completed")
	c.logger.Info("set source", "source", cencenelec.SourceName)
	return c
}

// Content runs a collection pass and returns the documents in discovery
// order. On failure it returns the documents collected so far together
// with the error.
func (c *Collector) Content(ctx context.Context) ([]*cencenelec.Document, error) {
	c.docs = []*cencenelec.Document{}

	c.logger.Debug("parse process start")
	err := c.parse(ctx)
	c.logger.Debug("parse process finished", "count", len(c.docs), "err", err)

	// Hand the collection off; the next pass starts from a fresh slice.
	docs := c.docs
	c.docs = nil
	return docs, err
}

func (c *Collector) parse(ctx context.Context) error {
	c.logger.Debug("parser enter", "host", c.host)

	for raw, err := range c.source.Discover(ctx, c.host) {
		if err != nil {
			return fmt.Errorf("discovering documents on %s: %w", c.host, err)
		}

		if err := c.FindNewDoc(ctx, c.host, raw.Title, raw.Abstract, raw.PubDate); err != nil {
			if cencenelec.ErrorCode(err) == cencenelec.EINVALID {
				c.logger.Warn("skip document", "title", raw.Title, "err", err)
				continue
			}
			return err
		}
	}
	return nil
}

// FindNewDoc builds a document from a raw description, adds it to the
// current collection and then pauses for the configured delay.
// A zero pubDate is replaced by the current time.
func (c *Collector) FindNewDoc(ctx context.Context, host, title, abstract string, pubDate time.Time) error {
	if pubDate.IsZero() {
		pubDate = c.now()
	}

	doc := &cencenelec.Document{
		Title:    title,
		Abstract: abstract,
		WebLink:  cencenelec.WebLink(host, title),
		Extra:    map[string]any{},
		PubDate:  pubDate,
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	c.docs = append(c.docs, doc)
	c.logger.Info(cencenelec.FormatDocumentForLog(doc))

	return sleep(ctx, c.delay)
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
