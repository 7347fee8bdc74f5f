package domain

import (
	"math"

	"github.com/alimikegami/pos-microservices/storefront-service/pkg/errs"
	"github.com/shopspring/decimal"
)

// CartItem is a product plus the quantity held. Product fields are embedded so the
// persisted record stays flat: {"id":1,"title":"...","quantity":2}.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price * quantity rounded to cents.
func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// Cart keeps items in insertion order. No two items share a product id, every
// quantity is at least 1 and the sum of quantities fits in an int.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{items: make([]CartItem, 0)}
}

// HydrateCart rebuilds a cart from a persisted record. Entries with a quantity below 1
// are dropped and duplicate ids are merged into the first occurrence. A record whose
// quantities overflow is rejected with errs.ErrInvalidQuantity.
func HydrateCart(items []CartItem) (*Cart, error) {
	c := &Cart{items: make([]CartItem, 0, len(items))}
	count := 0
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if item.Quantity > math.MaxInt-count {
			return nil, errs.ErrInvalidQuantity
		}
		count += item.Quantity

		if idx := c.indexOf(item.ID); idx >= 0 {
			c.items[idx].Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item)
	}
	return c, nil
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.items {
		if c.items[i].ID == productID {
			return i
		}
	}
	return -1
}

// Add increments the quantity of an existing item or appends a new one. The cart is
// left unchanged when quantity is below 1 or would overflow the count.
func (c *Cart) Add(product Product, quantity int) error {
	if quantity < 1 || quantity > math.MaxInt-c.Count() {
		return errs.ErrInvalidQuantity
	}

	if idx := c.indexOf(product.ID); idx >= 0 {
		c.items[idx].Quantity += quantity
		return nil
	}

	c.items = append(c.items, CartItem{Product: product, Quantity: quantity})
	return nil
}

// Remove drops the item with productID, reporting whether one was present.
func (c *Cart) Remove(productID int64) bool {
	kept := c.items[:0]
	removed := false
	for _, item := range c.items {
		if item.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	return removed
}

// UpdateQuantity sets the quantity of productID. Quantities below 1 are ignored and
// reported by returning false; the item is not removed. A quantity that would overflow
// the count fails with errs.ErrInvalidQuantity.
func (c *Cart) UpdateQuantity(productID int64, quantity int) (bool, error) {
	if quantity < 1 {
		return false, nil
	}

	idx := c.indexOf(productID)
	if idx < 0 {
		return true, nil
	}

	if quantity > math.MaxInt-(c.Count()-c.items[idx].Quantity) {
		return false, errs.ErrInvalidQuantity
	}
	c.items[idx].Quantity = quantity
	return true, nil
}

func (c *Cart) Clear() {
	c.items = make([]CartItem, 0)
}

// Items returns a copy of the items in insertion order.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Find(productID int64) (CartItem, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.items[idx], true
	}
	return CartItem{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Count is the sum of all quantities.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total is the sum of the rounded line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}
