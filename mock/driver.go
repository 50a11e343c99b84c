package mock

import (
	"context"
	"time"

	"github.com/fwojciec/cencenelec"
)

var _ cencenelec.Driver = (*Driver)(nil)

// Driver is a mock implementation of cencenelec.Driver.
type Driver struct {
	OpenFn               func(ctx context.Context) error
	SetPageLoadTimeoutFn func(d time.Duration)
	NavigateFn           func(ctx context.Context, url string) error
	CloseFn              func() error
}

func (d *Driver) Open(ctx context.Context) error {
	return d.OpenFn(ctx)
}

func (d *Driver) SetPageLoadTimeout(timeout time.Duration) {
	d.SetPageLoadTimeoutFn(timeout)
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.NavigateFn(ctx, url)
}

func (d *Driver) Close() error {
	return d.CloseFn()
}
