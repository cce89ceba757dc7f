package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MehediHasan95/tasty-pizza-server/internal/cache"
	"github.com/MehediHasan95/tasty-pizza-server/internal/domain"
	"github.com/MehediHasan95/tasty-pizza-server/internal/gateway"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
)

type mockItemRepo struct {
	m     sync.Mutex
	items []domain.Item
	err   error

	listCalls      int
	decrementedIDs [][]primitive.ObjectID
}

func (m *mockItemRepo) List(_ context.Context, category string, limit int64) ([]domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.listCalls++

	out := []domain.Item{}
	for _, item := range m.items {
		if category != "" && category != "all" && item.Category != category {
			continue
		}
		out = append(out, item)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockItemRepo) ListAll(ctx context.Context) ([]domain.Item, error) {
	return m.List(ctx, "all", 0)
}

func (m *mockItemRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func (m *mockItemRepo) Insert(_ context.Context, item *domain.Item) (*mongo.InsertOneResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	m.items = append(m.items, *item)
	return &mongo.InsertOneResult{InsertedID: item.ID}, nil
}

func (m *mockItemRepo) UpdateByID(_ context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockItemRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (m *mockItemRepo) DecrementStock(_ context.Context, ids []primitive.ObjectID) (*mongo.UpdateResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.decrementedIDs = append(m.decrementedIDs, ids)
	return &mongo.UpdateResult{MatchedCount: int64(len(ids)), ModifiedCount: int64(len(ids))}, nil
}

type mockCatalogCache struct {
	m     sync.Mutex
	lists map[string][]domain.Item
	items map[string]*domain.Item
	err   error
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{
		lists: map[string][]domain.Item{},
		items: map[string]*domain.Item{},
	}
}

func (m *mockCatalogCache) GetList(_ context.Context, key string) ([]domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	items, ok := m.lists[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return items, nil
}

func (m *mockCatalogCache) SetList(_ context.Context, key string, items []domain.Item) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.lists[key] = items
	return m.err
}

func (m *mockCatalogCache) GetItem(_ context.Context, id string) (*domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return item, nil
}

func (m *mockCatalogCache) SetItem(_ context.Context, id string, item *domain.Item) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.items[id] = item
	return m.err
}

func (m *mockCatalogCache) InvalidateItem(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.items, id)
	return m.err
}

func (m *mockCatalogCache) InvalidateLists(_ context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.lists = map[string][]domain.Item{}
	return m.err
}

type mockOrderRepo struct {
	m      sync.Mutex
	orders []domain.Order
	err    error
}

func (m *mockOrderRepo) ListAll(context.Context) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]domain.Order{}, m.orders...), m.err
}

func (m *mockOrderRepo) ListByOwner(_ context.Context, uid string) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.UID == uid {
			out = append(out, o)
		}
	}
	return out, m.err
}

func (m *mockOrderRepo) FindByTransactionID(_ context.Context, tranID string) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.orders {
		if m.orders[i].TransactionID == tranID {
			order := m.orders[i]
			return &order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) Insert(_ context.Context, order *domain.Order) (*mongo.InsertOneResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.orders = append(m.orders, *order)
	return &mongo.InsertOneResult{InsertedID: order.ID}, nil
}

func (m *mockOrderRepo) MarkPaid(_ context.Context, tranID string) (*mongo.UpdateResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.orders {
		if m.orders[i].TransactionID == tranID && !m.orders[i].PaymentStatus {
			m.orders[i].PaymentStatus = true
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (m *mockOrderRepo) MarkFulfilled(_ context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = true
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (m *mockOrderRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

func (m *mockOrderRepo) DeleteByTransactionID(_ context.Context, tranID string) (*mongo.DeleteResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.orders {
		if m.orders[i].TransactionID == tranID {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

type mockCartRepo struct {
	m       sync.Mutex
	entries []domain.CartEntry
	err     error

	deletedIDs [][]primitive.ObjectID
}

func (m *mockCartRepo) ListByOwner(_ context.Context, uid string) ([]domain.CartEntry, error) {
	m.m.Lock()
	defer m.m.Unlock()
	out := []domain.CartEntry{}
	for _, e := range m.entries {
		if e.UID == uid {
			out = append(out, e)
		}
	}
	return out, m.err
}

func (m *mockCartRepo) ExistsForOwner(_ context.Context, uid, itemID string) (bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, e := range m.entries {
		if e.UID == uid && e.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCartRepo) Insert(_ context.Context, entry *domain.CartEntry) (*mongo.InsertOneResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	m.entries = append(m.entries, *entry)
	return &mongo.InsertOneResult{InsertedID: entry.ID}, nil
}

func (m *mockCartRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

func (m *mockCartRepo) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (*mongo.DeleteResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.deletedIDs = append(m.deletedIDs, ids)

	deleted := int64(0)
	for _, id := range ids {
		for i := range m.entries {
			if m.entries[i].ID == id {
				m.entries = append(m.entries[:i], m.entries[i+1:]...)
				deleted++
				break
			}
		}
	}
	return &mongo.DeleteResult{DeletedCount: deleted}, nil
}

type mockGateway struct {
	m        sync.Mutex
	err      error
	requests []gateway.SessionRequest
	pageURL  string
}

func (m *mockGateway) InitiateSession(_ context.Context, req gateway.SessionRequest) (*gateway.SessionResponse, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &gateway.SessionResponse{
		Status:         "SUCCESS",
		GatewayPageURL: m.pageURL,
	}, nil
}
