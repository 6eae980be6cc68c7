package handlers_test

import (
	"context"

	"github.com/serroba/urlnorm/internal/registry"
)

// failingStore is a registry.Repository that fails every operation.
type failingStore struct {
	err error
}

func (f *failingStore) Save(_ context.Context, _ *registry.Entry) error {
	return f.err
}

func (f *failingStore) GetByHash(_ context.Context, _ registry.Hash) (*registry.Entry, error) {
	return nil, f.err
}

func (f *failingStore) IncrementHits(_ context.Context, _ registry.Hash) error {
	return f.err
}
