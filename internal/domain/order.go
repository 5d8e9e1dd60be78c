package domain

import "time"

// Order is the receipt returned by a successful checkout. Orders are not
// persisted server-side; the completion event and cart-clear are the only
// durable effects of a checkout.
type Order struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"session_id"`
	Items       []CartItem     `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
	Currency    string         `json:"currency"`
	Email       string         `json:"email"`
	Billing     BillingAddress `json:"billing"`
	ChargeID    string         `json:"charge_id"`
	CompletedAt time.Time      `json:"completed_at"`
}

// BillingAddress holds the address fields collected on the checkout form.
type BillingAddress struct {
	Country    string `json:"country"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}
