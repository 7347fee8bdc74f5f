package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	localmiddleware "github.com/alimikegami/pos-microservices/storefront-service/internal/middleware"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/repository"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/service"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type stubCatalog struct {
	err error
}

func (c *stubCatalog) GetProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []domain.Product{
		{ID: 1, Title: "Essence Mascara Lash Princess", Price: 9.99, Stock: 5, Category: "beauty"},
		{ID: 2, Title: "Eyeshadow Palette with Mirror", Price: 19.99, Stock: 44, Category: "beauty"},
		{ID: 3, Title: "Apple", Price: 1.99, Stock: 100, Category: "groceries"},
	}, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type ControllerTestSuite struct {
	suite.Suite
	e       *echo.Echo
	catalog *stubCatalog
	repo    *repository.MemoryCartRepositoryImpl
}

func (s *ControllerTestSuite) SetupTest() {
	s.e = echo.New()
	s.e.Use(localmiddleware.Logger)
	s.catalog = &stubCatalog{}
	s.repo = repository.CreateMemoryCartRepository()

	g := s.e.Group("/api/v1")
	productSvc := service.CreateProductService(s.catalog, 100)
	CreateProductController(g, productSvc)
	CreateCartController(g, service.CreateCartService(s.repo, productSvc, nil))
}

func (s *ControllerTestSuite) do(method, path, body, session string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if session != "" {
		req.Header.Set(localmiddleware.HeaderCartSession, session)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (s *ControllerTestSuite) TestProductRoutes() {
	type TestCase struct {
		Name           string
		Path           string
		ExpectedStatus int
		AssertData     func(s *ControllerTestSuite, data json.RawMessage)
	}

	testCases := []TestCase{
		{
			Name:           "List",
			Path:           "/api/v1/products",
			ExpectedStatus: http.StatusOK,
			AssertData: func(s *ControllerTestSuite, data json.RawMessage) {
				var payload struct {
					Count int `json:"count"`
				}
				s.Require().NoError(json.Unmarshal(data, &payload))
				s.Equal(3, payload.Count)
			},
		},
		{
			Name:           "List by category",
			Path:           "/api/v1/products?category=groceries",
			ExpectedStatus: http.StatusOK,
			AssertData: func(s *ControllerTestSuite, data json.RawMessage) {
				var payload struct {
					Records []struct {
						Slug string `json:"slug"`
					} `json:"records"`
				}
				s.Require().NoError(json.Unmarshal(data, &payload))
				s.Require().Len(payload.Records, 1)
				s.Equal("apple", payload.Records[0].Slug)
			},
		},
		{
			Name:           "Detail by slug",
			Path:           "/api/v1/products/eyeshadow-palette-with-mirror",
			ExpectedStatus: http.StatusOK,
			AssertData: func(s *ControllerTestSuite, data json.RawMessage) {
				var payload struct {
					ID            int64  `json:"id"`
					CategoryLabel string `json:"category_label"`
					LowStock      bool   `json:"low_stock"`
				}
				s.Require().NoError(json.Unmarshal(data, &payload))
				s.Equal(int64(2), payload.ID)
				s.Equal("Beauty", payload.CategoryLabel)
				s.False(payload.LowStock)
			},
		},
		{
			Name:           "Detail by id",
			Path:           "/api/v1/products/id/1",
			ExpectedStatus: http.StatusOK,
			AssertData: func(s *ControllerTestSuite, data json.RawMessage) {
				var payload struct {
					Slug string `json:"slug"`
				}
				s.Require().NoError(json.Unmarshal(data, &payload))
				s.Equal("essence-mascara-lash-princess", payload.Slug)
			},
		},
		{Name: "Unknown slug", Path: "/api/v1/products/nope", ExpectedStatus: http.StatusNotFound},
		{Name: "Unknown id", Path: "/api/v1/products/id/77", ExpectedStatus: http.StatusNotFound},
		{Name: "Malformed id", Path: "/api/v1/products/id/abc", ExpectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			rec, env := s.do(http.MethodGet, tc.Path, "", "")

			s.Equal(tc.ExpectedStatus, rec.Code)
			if tc.AssertData != nil {
				s.Equal("success", env.Status)
				tc.AssertData(s, env.Data)
			}
		})
	}
}

func (s *ControllerTestSuite) TestCatalogUnavailable() {
	s.catalog.err = fmt.Errorf("%w: dial tcp: connection refused", errs.ErrCatalogUnavailable)

	rec, env := s.do(http.MethodGet, "/api/v1/products", "", "")

	s.Equal(http.StatusBadGateway, rec.Code)
	s.Equal("error", env.Status)
	s.Equal(errs.ErrCatalogUnavailable.Error(), env.Message)
}

func (s *ControllerTestSuite) TestCartFlow() {
	rec, _ := s.do(http.MethodPost, "/api/v1/cart/items", `{"product_id": 1}`, "")
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/cart/items", `{"product_id": 1, "quantity": 2}`, "")
	s.Equal(http.StatusOK, rec.Code)

	rec, env := s.do(http.MethodGet, "/api/v1/cart/count", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"count": 3}`, string(env.Data))

	rec, env = s.do(http.MethodPut, "/api/v1/cart/items/1", `{"quantity": 5}`, "")
	s.Equal(http.StatusOK, rec.Code)
	var cart struct {
		Count       int    `json:"count"`
		TotalAmount string `json:"total_amount"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &cart))
	s.Equal(5, cart.Count)
	s.Equal("49.95", cart.TotalAmount)

	rec, env = s.do(http.MethodDelete, "/api/v1/cart/items/1", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &cart))
	s.Equal(0, cart.Count)
}

func (s *ControllerTestSuite) TestUpdateBelowOneIsReported() {
	s.do(http.MethodPost, "/api/v1/cart/items", `{"product_id": 2, "quantity": 2}`, "")

	rec, env := s.do(http.MethodPut, "/api/v1/cart/items/2", `{"quantity": 0}`, "")

	s.Equal(http.StatusOK, rec.Code)
	var cart struct {
		Count   int  `json:"count"`
		Ignored bool `json:"ignored"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &cart))
	s.True(cart.Ignored)
	s.Equal(2, cart.Count)
}

func (s *ControllerTestSuite) TestClearCart() {
	s.do(http.MethodPost, "/api/v1/cart/items", `{"product_id": 3}`, "")

	rec, _ := s.do(http.MethodDelete, "/api/v1/cart", "", "")

	s.Equal(http.StatusOK, rec.Code)
	_, found := s.repo.Raw(service.DefaultCartKey)
	s.False(found)
}

func (s *ControllerTestSuite) TestSessionHeaderSelectsCart() {
	s.do(http.MethodPost, "/api/v1/cart/items", `{"product_id": 3, "quantity": 4}`, "s1")

	_, shared := s.do(http.MethodGet, "/api/v1/cart/count", "", "")
	_, own := s.do(http.MethodGet, "/api/v1/cart/count", "", "s1")

	s.JSONEq(`{"count": 0}`, string(shared.Data))
	s.JSONEq(`{"count": 4}`, string(own.Data))
	_, found := s.repo.Raw("cart:s1")
	s.True(found)
}

func (s *ControllerTestSuite) TestCartErrors() {
	type TestCase struct {
		Name           string
		Method         string
		Path           string
		Body           string
		ExpectedStatus int
	}

	testCases := []TestCase{
		{Name: "Negative quantity", Method: http.MethodPost, Path: "/api/v1/cart/items", Body: `{"product_id": 1, "quantity": -1}`, ExpectedStatus: http.StatusBadRequest},
		{Name: "Unknown product", Method: http.MethodPost, Path: "/api/v1/cart/items", Body: `{"product_id": 999}`, ExpectedStatus: http.StatusNotFound},
		{Name: "Malformed body", Method: http.MethodPost, Path: "/api/v1/cart/items", Body: `{"product_id": "x"`, ExpectedStatus: http.StatusBadRequest},
		{Name: "Malformed id on update", Method: http.MethodPut, Path: "/api/v1/cart/items/abc", Body: `{"quantity": 1}`, ExpectedStatus: http.StatusBadRequest},
		{Name: "Malformed id on remove", Method: http.MethodDelete, Path: "/api/v1/cart/items/abc", ExpectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			rec, env := s.do(tc.Method, tc.Path, tc.Body, "")

			s.Equal(tc.ExpectedStatus, rec.Code)
			s.Equal("error", env.Status)
		})
	}
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}
