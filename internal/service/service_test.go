package service

import (
	"context"
	"errors"
	"sync"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/dto"
)

type stubCatalog struct {
	products []domain.Product
	err      error
	limits   []int
}

func (c *stubCatalog) GetProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	c.limits = append(c.limits, limit)
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.KafkaMessage
	keys     []string
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.messages = append(p.messages, msg)
	return nil
}

type failingCartRepo struct{}

var errStoreDown = errors.New("store down")

func (failingCartRepo) GetCart(ctx context.Context, key string) ([]domain.CartItem, bool, error) {
	return nil, false, errStoreDown
}

func (failingCartRepo) SaveCart(ctx context.Context, key string, items []domain.CartItem) error {
	return errStoreDown
}

func (failingCartRepo) DeleteCart(ctx context.Context, key string) error {
	return errStoreDown
}

func (failingCartRepo) Close() error { return nil }

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Essence Mascara Lash Princess", Price: 9.99, DiscountPercentage: 7.17, Stock: 5, Category: "beauty"},
		{ID: 2, Title: "Eyeshadow Palette with Mirror", Price: 19.99, Stock: 44, Category: "beauty"},
		{ID: 3, Title: "Men's Cotton T-Shirt!", Price: 10.00, Stock: 10, Category: "mens-shirts"},
		{ID: 4, Title: "Men's Cotton T Shirt", Price: 12.50, Stock: 11, Category: "mens-shirts"},
		{ID: 5, Title: "Apple", Price: 1.99, Stock: 100, Category: "groceries"},
	}
}
