package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/cencenelec"
)

var _ cencenelec.Source = (*Source)(nil)

// Source is a mock implementation of cencenelec.Source.
type Source struct {
	DiscoverFn func(ctx context.Context, host string) iter.Seq2[cencenelec.RawDocument, error]
}

func (s *Source) Discover(ctx context.Context, host string) iter.Seq2[cencenelec.RawDocument, error] {
	return s.DiscoverFn(ctx, host)
}

// Seq returns a sequence yielding docs and then err, if err is non-nil.
func Seq(docs []cencenelec.RawDocument, err error) iter.Seq2[cencenelec.RawDocument, error] {
	return func(yield func(cencenelec.RawDocument, error) bool) {
		for _, doc := range docs {
			if !yield(doc, nil) {
				return
			}
		}
		if err != nil {
			yield(cencenelec.RawDocument{}, err)
		}
	}
}
