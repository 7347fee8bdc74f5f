package controller

import (
	"strconv"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/service"
	pkgdto "github.com/alimikegami/pos-microservices/storefront-service/pkg/dto"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService) {
	c := ProductController{
		service: service,
	}
	e.GET("/products", c.GetProducts)
	e.GET("/products/id/:id", c.GetProductByID)
	e.GET("/products/:slug", c.GetProductBySlug)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	responsePayload, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved products record", responsePayload)
}

func (c *ProductController) GetProductBySlug(e echo.Context) error {
	responsePayload, err := c.service.GetProductBySlug(e.Request().Context(), e.Param("slug"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved product record", responsePayload)
}

func (c *ProductController) GetProductByID(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	responsePayload, err := c.service.GetProductByID(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved product record", responsePayload)
}
