package mock

import (
	"context"

	"github.com/fwojciec/cencenelec"
)

var _ cencenelec.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of cencenelec.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, driver cencenelec.Driver, dir, url string) (string, error)
}

func (d *Downloader) Download(ctx context.Context, driver cencenelec.Driver, dir, url string) (string, error) {
	return d.DownloadFn(ctx, driver, dir, url)
}
