package domain

import "time"

// CartSchemaVersion tags the persisted cart payload so that incompatible
// records from older deployments fall back to an empty cart instead of
// deserializing garbage.
const CartSchemaVersion = 1

// Cart is the shopping cart aggregate for one storefront session.
// Line items are keyed by pack ID: at most one line per pack, repeated adds
// increment the quantity.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one cart line: a snapshot of the pack at add-time plus a
// quantity. The embedded price is captured when the line is created and is
// never re-read from the catalog feed.
type CartItem struct {
	Pack
	Quantity int `json:"quantity"`
}

// TotalAmount sums price x quantity over all lines (in cents).
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of all line quantities, not the row count.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line for the given pack ID, or -1.
func (c *Cart) FindItemIndex(packID string) int {
	for i := range c.Items {
		if c.Items[i].Pack.ID == packID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
