package service

import (
	"context"
	"strings"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/dto"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/repository"
	pkgdto "github.com/alimikegami/pos-microservices/storefront-service/pkg/dto"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/utils"
	"github.com/rs/zerolog/log"
)

const lowStockThreshold = 10

type ProductServiceImpl struct {
	catalogRepo repository.CatalogRepository
	pageLimit   int
}

// CreateProductService serves product views from catalogRepo. pageLimit is the size of
// the page fetched for lookups and the default list size.
func CreateProductService(catalogRepo repository.CatalogRepository, pageLimit int) ProductService {
	return &ProductServiceImpl{catalogRepo: catalogRepo, pageLimit: pageLimit}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (responsePayload dto.ProductListResponse, err error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = s.pageLimit
	}

	products, err := s.catalogRepo.GetProducts(ctx, limit)
	if err != nil {
		return
	}

	responsePayload.Records = make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		responsePayload.Records = append(responsePayload.Records, dto.ProductResponse{
			Product: p,
			Slug:    utils.CreateSlug(p.Title),
		})
	}
	responsePayload.Count = len(responsePayload.Records)

	return
}

func (s *ProductServiceImpl) GetProductBySlug(ctx context.Context, slug string) (responsePayload dto.ProductDetailResponse, err error) {
	products, err := s.catalogRepo.GetProducts(ctx, s.pageLimit)
	if err != nil {
		return
	}

	product, ok := FindBySlug(products, slug)
	if !ok {
		log.Ctx(ctx).Info().Str("component", "GetProductBySlug").Str("slug", slug).Msg("no product matches slug")
		return responsePayload, errs.ErrNotFound
	}

	return toProductDetail(product), nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id int64) (responsePayload dto.ProductDetailResponse, err error) {
	product, err := s.findByID(ctx, id)
	if err != nil {
		return
	}

	return toProductDetail(product), nil
}

func (s *ProductServiceImpl) findByID(ctx context.Context, id int64) (domain.Product, error) {
	products, err := s.catalogRepo.GetProducts(ctx, s.pageLimit)
	if err != nil {
		return domain.Product{}, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}

	return domain.Product{}, errs.ErrNotFound
}

// FindBySlug scans products in fetch order and returns the first whose title slugs to
// slug. When two titles share a slug the later product can never be resolved.
func FindBySlug(products []domain.Product, slug string) (domain.Product, bool) {
	for _, p := range products {
		if utils.CreateSlug(p.Title) == slug {
			return p, true
		}
	}
	return domain.Product{}, false
}

func toProductDetail(p domain.Product) dto.ProductDetailResponse {
	return dto.ProductDetailResponse{
		Product:       p,
		Slug:          utils.CreateSlug(p.Title),
		CategoryLabel: utils.CapitalizeFirst(p.Category),
		Discounted:    p.DiscountPercentage > 0,
		LowStock:      p.Stock <= lowStockThreshold,
	}
}
