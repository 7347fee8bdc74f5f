package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

type HTTPCatalogRepositoryImpl struct {
	baseURL string
	client  *httpclient.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
}

// CreateHTTPCatalogRepository reads products from `{baseURL}/products?limit=N`. Every
// failure mode (transport, status, body) surfaces as errs.ErrCatalogUnavailable; there
// is no retry. A canceled ctx is returned as is.
func CreateHTTPCatalogRepository(baseURL string, client *httpclient.Client, cb *gobreaker.CircuitBreaker[[]byte]) CatalogRepository {
	return &HTTPCatalogRepositoryImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		cb:      cb,
	}
}

func (r *HTTPCatalogRepositoryImpl) GetProducts(ctx context.Context, limit int) (data []domain.Product, err error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/products?%s", r.baseURL, query.Encode())

	body, err := r.cb.Execute(func() ([]byte, error) {
		statusCode, body, err := r.client.SendRequest(ctx, httpclient.HttpRequest{
			URL:    endpoint,
			Method: http.MethodGet,
			Headers: map[string]string{
				"Accept": "application/json",
			},
		})
		if err != nil {
			return nil, err
		}

		if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("catalog returned non-2xx status: %d", statusCode)
		}

		return body, nil
	})
	if errors.Is(err, context.Canceled) {
		log.Ctx(ctx).Debug().Err(err).Str("component", "GetProducts").Msg("caller went away")
		return nil, fmt.Errorf("catalog request canceled: %w", err)
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Str("url", endpoint).Msg("")
		return nil, fmt.Errorf("%w: %v", errs.ErrCatalogUnavailable, err)
	}

	var page domain.ProductPage
	if err = json.Unmarshal(body, &page); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("catalog body is not a product page")
		return nil, fmt.Errorf("%w: %v", errs.ErrCatalogUnavailable, err)
	}

	if page.Products == nil {
		page.Products = []domain.Product{}
	}

	return page.Products, nil
}
