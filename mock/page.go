package mock

import (
	"context"

	"github.com/fwojciec/carlist"
)

var _ carlist.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of carlist.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page int, url, html string) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page int, url, html string) error {
	return s.SaveFn(ctx, page, url, html)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
