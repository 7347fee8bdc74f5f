package dto

import "github.com/alimikegami/pos-microservices/storefront-service/internal/domain"

const (
	EventCartUpdated = "cart_updated"
	EventCartCleared = "cart_cleared"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type CartEvent struct {
	CartKey string            `json:"cart_key"`
	Items   []domain.CartItem `json:"items"`
	Count   int               `json:"count"`
}
