package service

import (
	"context"
	"fmt"
	"testing"

	pkgdto "github.com/alimikegami/pos-microservices/storefront-service/pkg/dto"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProducts(t *testing.T) {
	catalog := &stubCatalog{products: catalogFixture()}
	svc := CreateProductService(catalog, 100)

	resp, err := svc.GetProducts(context.Background(), pkgdto.Filter{})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Count)
	assert.Equal(t, "essence-mascara-lash-princess", resp.Records[0].Slug)
	assert.Equal(t, []int{100}, catalog.limits)
}

func TestGetProductsFilters(t *testing.T) {
	testCases := []struct {
		Name          string
		Filter        pkgdto.Filter
		ExpectedIDs   []int64
		ExpectedLimit int
	}{
		{Name: "Category matches case-insensitively", Filter: pkgdto.Filter{Category: "Mens-Shirts"}, ExpectedIDs: []int64{3, 4}, ExpectedLimit: 100},
		{Name: "Unknown category yields nothing", Filter: pkgdto.Filter{Category: "furniture"}, ExpectedIDs: []int64{}, ExpectedLimit: 100},
		{Name: "Explicit limit is forwarded", Filter: pkgdto.Filter{Limit: 30}, ExpectedIDs: []int64{1, 2, 3, 4, 5}, ExpectedLimit: 30},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			catalog := &stubCatalog{products: catalogFixture()}
			svc := CreateProductService(catalog, 100)

			resp, err := svc.GetProducts(context.Background(), tc.Filter)
			require.NoError(t, err)

			ids := []int64{}
			for _, r := range resp.Records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tc.ExpectedIDs, ids)
			assert.Equal(t, len(tc.ExpectedIDs), resp.Count)
			assert.Equal(t, []int{tc.ExpectedLimit}, catalog.limits)
		})
	}
}

func TestGetProductBySlug(t *testing.T) {
	svc := CreateProductService(&stubCatalog{products: catalogFixture()}, 100)

	resp, err := svc.GetProductBySlug(context.Background(), "essence-mascara-lash-princess")

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "essence-mascara-lash-princess", resp.Slug)
	assert.Equal(t, "Beauty", resp.CategoryLabel)
	assert.True(t, resp.Discounted)
	assert.True(t, resp.LowStock)
}

func TestGetProductBySlugCollisionReturnsFirst(t *testing.T) {
	svc := CreateProductService(&stubCatalog{products: catalogFixture()}, 100)

	resp, err := svc.GetProductBySlug(context.Background(), "men-s-cotton-t-shirt")

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)

	shadowed, err := svc.GetProductByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "men-s-cotton-t-shirt", shadowed.Slug)
}

func TestGetProductBySlugNotFound(t *testing.T) {
	svc := CreateProductService(&stubCatalog{products: catalogFixture()}, 100)

	_, err := svc.GetProductBySlug(context.Background(), "does-not-exist")

	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetProductDerivedFlags(t *testing.T) {
	svc := CreateProductService(&stubCatalog{products: catalogFixture()}, 100)

	atThreshold, err := svc.GetProductByID(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, atThreshold.LowStock)
	assert.False(t, atThreshold.Discounted)

	aboveThreshold, err := svc.GetProductByID(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, aboveThreshold.LowStock)
}

func TestGetProductByIDNotFound(t *testing.T) {
	svc := CreateProductService(&stubCatalog{products: catalogFixture()}, 100)

	_, err := svc.GetProductByID(context.Background(), 999)

	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProductServiceCatalogUnavailable(t *testing.T) {
	catalogErr := fmt.Errorf("%w: connection refused", errs.ErrCatalogUnavailable)
	svc := CreateProductService(&stubCatalog{err: catalogErr}, 100)

	_, err := svc.GetProducts(context.Background(), pkgdto.Filter{})
	require.ErrorIs(t, err, errs.ErrCatalogUnavailable)

	_, err = svc.GetProductBySlug(context.Background(), "apple")
	require.ErrorIs(t, err, errs.ErrCatalogUnavailable)

	_, err = svc.GetProductByID(context.Background(), 5)
	require.ErrorIs(t, err, errs.ErrCatalogUnavailable)
}
