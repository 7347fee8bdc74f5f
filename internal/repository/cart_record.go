package repository

import (
	"encoding/json"
	"fmt"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
)

func encodeCartRecord(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart record: %w", err)
	}
	return data, nil
}

func decodeCartRecord(data []byte) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart record: %w", err)
	}
	return items, nil
}
