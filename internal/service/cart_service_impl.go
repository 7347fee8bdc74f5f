package service

import (
	"context"
	"strings"
	"sync"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/dto"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/repository"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
)

// DefaultCartKey is the record key used when a request carries no session.
const DefaultCartKey = "cart"

// CartKey namespaces the cart record for a client session.
func CartKey(session string) string {
	session = strings.TrimSpace(session)
	if session == "" {
		return DefaultCartKey
	}
	return DefaultCartKey + ":" + session
}

type CartServiceImpl struct {
	cartRepo       repository.CartRepository
	productService ProductService
	publisher      EventPublisher
	locks          *keyedMutex
}

// CreateCartService wires the cart store. publisher may be nil, in which case no events
// are emitted.
func CreateCartService(cartRepo repository.CartRepository, productService ProductService, publisher EventPublisher) CartService {
	return &CartServiceImpl{
		cartRepo:       cartRepo,
		productService: productService,
		publisher:      publisher,
		locks:          newKeyedMutex(),
	}
}

func (s *CartServiceImpl) GetCart(ctx context.Context, cartKey string) (responsePayload dto.CartResponse, err error) {
	cart, err := s.loadCart(ctx, normalizeKey(cartKey))
	if err != nil {
		return
	}

	return toCartResponse(cart), nil
}

func (s *CartServiceImpl) GetCartCount(ctx context.Context, cartKey string) (responsePayload dto.CartCountResponse, err error) {
	cart, err := s.loadCart(ctx, normalizeKey(cartKey))
	if err != nil {
		return
	}

	responsePayload.Count = cart.Count()
	return
}

func (s *CartServiceImpl) AddToCart(ctx context.Context, req dto.AddCartItemRequest) (responsePayload dto.CartResponse, err error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return responsePayload, errs.ErrInvalidQuantity
	}

	product, err := s.productService.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return
	}

	key := normalizeKey(req.CartKey)
	unlock := s.locks.Lock(key)
	defer unlock()

	cart, err := s.loadCart(ctx, key)
	if err != nil {
		return
	}

	if err = cart.Add(product.Product, quantity); err != nil {
		return
	}

	return s.persist(ctx, key, cart)
}

func (s *CartServiceImpl) RemoveFromCart(ctx context.Context, cartKey string, productID int64) (responsePayload dto.CartResponse, err error) {
	key := normalizeKey(cartKey)
	unlock := s.locks.Lock(key)
	defer unlock()

	cart, err := s.loadCart(ctx, key)
	if err != nil {
		return
	}

	cart.Remove(productID)

	return s.persist(ctx, key, cart)
}

func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, req dto.UpdateCartItemRequest) (responsePayload dto.CartResponse, err error) {
	key := normalizeKey(req.CartKey)
	unlock := s.locks.Lock(key)
	defer unlock()

	cart, err := s.loadCart(ctx, key)
	if err != nil {
		return
	}

	applied, err := cart.UpdateQuantity(req.ProductID, req.Quantity)
	if err != nil {
		return
	}
	if !applied {
		log.Ctx(ctx).Warn().
			Str("component", "UpdateQuantity").
			Int64("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Msg("quantity below 1 ignored, cart left unchanged")

		responsePayload = toCartResponse(cart)
		responsePayload.Ignored = true
		return responsePayload, nil
	}

	return s.persist(ctx, key, cart)
}

func (s *CartServiceImpl) ClearCart(ctx context.Context, cartKey string) (responsePayload dto.CartResponse, err error) {
	key := normalizeKey(cartKey)
	unlock := s.locks.Lock(key)
	defer unlock()

	if err = s.cartRepo.DeleteCart(ctx, key); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ClearCart").Msg("")
		return responsePayload, errs.ErrInternalServer
	}

	s.publish(ctx, key, dto.EventCartCleared, domain.NewCart())

	return toCartResponse(domain.NewCart()), nil
}

func (s *CartServiceImpl) loadCart(ctx context.Context, key string) (*domain.Cart, error) {
	items, found, err := s.cartRepo.GetCart(ctx, key)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "loadCart").Msg("")
		return nil, errs.ErrInternalServer
	}

	if !found {
		return domain.NewCart(), nil
	}

	cart, err := domain.HydrateCart(items)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "loadCart").Str("cart_key", key).Msg("stored cart is corrupt")
		return nil, errs.ErrInternalServer
	}

	return cart, nil
}

func (s *CartServiceImpl) persist(ctx context.Context, key string, cart *domain.Cart) (dto.CartResponse, error) {
	if err := s.cartRepo.SaveCart(ctx, key, cart.Items()); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "persist").Msg("")
		return dto.CartResponse{}, errs.ErrInternalServer
	}

	s.publish(ctx, key, dto.EventCartUpdated, cart)

	return toCartResponse(cart), nil
}

// publish is best effort: the record is already persisted when it runs.
func (s *CartServiceImpl) publish(ctx context.Context, key, eventType string, cart *domain.Cart) {
	if s.publisher == nil {
		return
	}

	msg := dto.KafkaMessage{
		EventType: eventType,
		Data: dto.CartEvent{
			CartKey: key,
			Items:   cart.Items(),
			Count:   cart.Count(),
		},
	}

	if err := s.publisher.Publish(ctx, key, msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Msg("")
	}
}

func normalizeKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return DefaultCartKey
	}
	return key
}

func toCartResponse(cart *domain.Cart) dto.CartResponse {
	items := cart.Items()
	resp := dto.CartResponse{
		Items:       make([]dto.CartItemResponse, 0, len(items)),
		Count:       cart.Count(),
		TotalAmount: cart.Total().StringFixed(2),
	}

	for _, item := range items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			CartItem:  item,
			Slug:      utils.CreateSlug(item.Title),
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}

	return resp
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refLock)}
}

// Lock blocks until key is free and returns its release func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
