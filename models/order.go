package models

// CustomerInfo is what the checkout form collects; nothing is persisted
type CustomerInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Delivery string `json:"delivery"` // "livraison" or "retrait"
	Payment  string `json:"payment"`  // "especes", "carte", ...
}

// CheckoutRequest is the body of POST /checkout
type CheckoutRequest struct {
	Customer CustomerInfo `json:"customer"`
}

// CheckoutResponse carries the messaging deep link the client should open
type CheckoutResponse struct {
	Link      string `json:"link"`
	ItemCount int    `json:"itemCount"`
	Total     int    `json:"total"`
}
