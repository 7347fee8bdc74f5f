package service

import (
	"context"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/dto"
	pkgdto "github.com/alimikegami/pos-microservices/storefront-service/pkg/dto"
)

type ProductService interface {
	GetProducts(ctx context.Context, filter pkgdto.Filter) (responsePayload dto.ProductListResponse, err error)
	GetProductBySlug(ctx context.Context, slug string) (responsePayload dto.ProductDetailResponse, err error)
	GetProductByID(ctx context.Context, id int64) (responsePayload dto.ProductDetailResponse, err error)
}

type CartService interface {
	GetCart(ctx context.Context, cartKey string) (responsePayload dto.CartResponse, err error)
	GetCartCount(ctx context.Context, cartKey string) (responsePayload dto.CartCountResponse, err error)
	AddToCart(ctx context.Context, req dto.AddCartItemRequest) (responsePayload dto.CartResponse, err error)
	RemoveFromCart(ctx context.Context, cartKey string, productID int64) (responsePayload dto.CartResponse, err error)
	UpdateQuantity(ctx context.Context, req dto.UpdateCartItemRequest) (responsePayload dto.CartResponse, err error)
	ClearCart(ctx context.Context, cartKey string) (responsePayload dto.CartResponse, err error)
}

// EventPublisher delivers cart events. Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}
