package mock

import (
	"context"

	"github.com/fwojciec/cencenelec"
)

var _ cencenelec.Collector = (*Collector)(nil)

// Collector is a mock implementation of cencenelec.Collector.
type Collector struct {
	ContentFn func(ctx context.Context) ([]*cencenelec.Document, error)
}

func (c *Collector) Content(ctx context.Context) ([]*cencenelec.Document, error) {
	return c.ContentFn(ctx)
}
