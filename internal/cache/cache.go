package cache

import (
	"context"
	"errors"

	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// CatalogCache holds catalog read results keyed by query shape. A miss is
// signalled with ErrCacheMiss; any other error means Redis trouble and
// callers fall through to the store.
type CatalogCache interface {
	GetList(ctx context.Context, key string) ([]domain.Item, error)
	SetList(ctx context.Context, key string, items []domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	SetItem(ctx context.Context, id string, item *domain.Item) error
	InvalidateItem(ctx context.Context, id string) error
	InvalidateLists(ctx context.Context) error
}
