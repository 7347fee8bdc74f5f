package controller

import (
	"strconv"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/dto"
	localmiddleware "github.com/alimikegami/pos-microservices/storefront-service/internal/middleware"
	"github.com/alimikegami/pos-microservices/storefront-service/internal/service"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/alimikegami/pos-microservices/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CartController struct {
	service service.CartService
}

func CreateCartController(e *echo.Group, service service.CartService) {
	c := CartController{
		service: service,
	}
	g := e.Group("/cart", localmiddleware.CartSession)
	g.GET("", c.GetCart)
	g.GET("/count", c.GetCartCount)
	g.POST("/items", c.AddToCart)
	g.PUT("/items/:productId", c.UpdateQuantity)
	g.DELETE("/items/:productId", c.RemoveFromCart)
	g.DELETE("", c.ClearCart)
}

func (c *CartController) GetCart(e echo.Context) error {
	responsePayload, err := c.service.GetCart(e.Request().Context(), localmiddleware.CartKey(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved cart", responsePayload)
}

func (c *CartController) GetCartCount(e echo.Context) error {
	responsePayload, err := c.service.GetCartCount(e.Request().Context(), localmiddleware.CartKey(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved cart count", responsePayload)
}

func (c *CartController) AddToCart(e echo.Context) error {
	payload := dto.AddCartItemRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddToCart").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload.CartKey = localmiddleware.CartKey(e)
	responsePayload, err := c.service.AddToCart(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "item added to cart", responsePayload)
}

func (c *CartController) UpdateQuantity(e echo.Context) error {
	productID, err := parseProductID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.UpdateCartItemRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateQuantity").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload.CartKey = localmiddleware.CartKey(e)
	payload.ProductID = productID
	responsePayload, err := c.service.UpdateQuantity(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	message := "cart item quantity updated"
	if responsePayload.Ignored {
		message = "quantity below 1 ignored"
	}

	return response.WriteSuccessResponse(e, message, responsePayload)
}

func (c *CartController) RemoveFromCart(e echo.Context) error {
	productID, err := parseProductID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	responsePayload, err := c.service.RemoveFromCart(e.Request().Context(), localmiddleware.CartKey(e), productID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "item removed from cart", responsePayload)
}

func (c *CartController) ClearCart(e echo.Context) error {
	responsePayload, err := c.service.ClearCart(e.Request().Context(), localmiddleware.CartKey(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "cart cleared", responsePayload)
}

func parseProductID(e echo.Context) (int64, error) {
	id, err := strconv.ParseInt(e.Param("productId"), 10, 64)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "parseProductID").Msg("")
		return 0, errs.ErrClient
	}
	return id, nil
}
