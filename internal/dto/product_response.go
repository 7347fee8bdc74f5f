package dto

import "github.com/alimikegami/pos-microservices/storefront-service/internal/domain"

type ProductResponse struct {
	domain.Product
	Slug string `json:"slug"`
}

type ProductDetailResponse struct {
	domain.Product
	Slug          string `json:"slug"`
	CategoryLabel string `json:"category_label"`
	Discounted    bool   `json:"discounted"`
	LowStock      bool   `json:"low_stock"`
}

type ProductListResponse struct {
	Records []ProductResponse `json:"records"`
	Count   int               `json:"count"`
}
