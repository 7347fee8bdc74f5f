package repository

import (
	"context"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
)

// CartRepository stores one JSON cart record per key. A missing record is reported by
// found == false, never by an error.
type CartRepository interface {
	GetCart(ctx context.Context, key string) (items []domain.CartItem, found bool, err error)
	SaveCart(ctx context.Context, key string, items []domain.CartItem) (err error)
	DeleteCart(ctx context.Context, key string) (err error)
	Close() error
}

type CatalogRepository interface {
	GetProducts(ctx context.Context, limit int) (data []domain.Product, err error)
}
