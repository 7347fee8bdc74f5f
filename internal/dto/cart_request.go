package dto

type AddCartItemRequest struct {
	CartKey   string `json:"-"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	CartKey   string `json:"-"`
	ProductID int64  `json:"-"`
	Quantity  int    `json:"quantity"`
}
