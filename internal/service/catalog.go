package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/singleflight"

	"github.com/MehediHasan95/tasty-pizza-server/internal/cache"
	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
)

// CatalogService fronts the item collection with a Redis cache-aside layer.
// Reads go cache-first with singleflight on misses; writes invalidate.
type CatalogService struct {
	repo  repository.ItemRepository
	cache cache.CatalogCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo repository.ItemRepository, c cache.CatalogCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
	}
}

func (s *CatalogService) ListItems(ctx context.Context, category string, limit int64) ([]domain.Item, error) {
	key := fmt.Sprintf("%s:%d", category, limit)

	v, err, _ := s.sfg.Do("list:"+key, func() (interface{}, error) {
		items, err := s.cache.GetList(ctx, key)
		if err == nil {
			return items, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		items, errList := s.repo.List(ctx, category, limit)
		if errList != nil {
			return nil, errList
		}

		go func() {
			if errSet := s.cache.SetList(context.Background(), key, items); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Item), nil
}

func (s *CatalogService) GetItem(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	hex := id.Hex()

	v, err, _ := s.sfg.Do("detail:"+hex, func() (interface{}, error) {
		item, err := s.cache.GetItem(ctx, hex)
		if err == nil {
			return item, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		item, errGet := s.repo.FindByID(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetItem(context.Background(), hex, item); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return item, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Item), nil
}

func (s *CatalogService) CreateItem(ctx context.Context, item *domain.Item) (*mongo.InsertOneResult, error) {
	result, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, err
	}

	s.invalidateLists()
	return result, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	result, err := s.repo.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateItem(id.Hex())
	s.invalidateLists()
	return result, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateItem(id.Hex())
	s.invalidateLists()
	return result, nil
}

func (s *CatalogService) invalidateItem(hex string) {
	ctx, cancel := contextWithInvalidateTimeout()
	defer cancel()
	if err := s.cache.InvalidateItem(ctx, hex); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

func (s *CatalogService) invalidateLists() {
	ctx, cancel := contextWithInvalidateTimeout()
	defer cancel()
	if err := s.cache.InvalidateLists(ctx); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
