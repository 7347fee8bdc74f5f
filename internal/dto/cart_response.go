package dto

import "github.com/alimikegami/pos-microservices/storefront-service/internal/domain"

type CartItemResponse struct {
	domain.CartItem
	Slug      string `json:"slug"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	Count       int                `json:"count"`
	TotalAmount string             `json:"total_amount"`
	// Ignored is set when a quantity update below 1 was dropped without changing the cart.
	Ignored bool `json:"ignored,omitempty"`
}

type CartCountResponse struct {
	Count int `json:"count"`
}
