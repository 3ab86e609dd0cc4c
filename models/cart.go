package models

import "time"

// CartLine is one (product, size) entry in a session cart.
// Product fields are denormalized at the time of add so the line stays
// renderable even if the catalog changes under it.
type CartLine struct {
	ProductID    int    `json:"productId"`
	SelectedSize string `json:"selectedSize"`
	Quantity     int    `json:"quantity"`
	Name         string `json:"name"`
	Price        int    `json:"price"` // cents
	Image        string `json:"image"`
}

// Key returns the uniqueness key for the line
func (l CartLine) Key() CartKey {
	return CartKey{ProductID: l.ProductID, Size: l.SelectedSize}
}

// CartKey identifies a cart line: no two lines in a cart share one
type CartKey struct {
	ProductID int
	Size      string
}

// Cart is the persisted state for one session
type Cart struct {
	SessionID string     `json:"sessionId"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Total returns the cart total in cents, recomputed from current lines
func (c *Cart) Total() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Price * l.Quantity
	}
	return total
}

// ItemCount returns the summed quantity across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}
