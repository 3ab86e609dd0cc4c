package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"camelia-boutique/models"
	"camelia-boutique/utils"
)

// CheckoutService turns a session cart into a WhatsApp deep link carrying
// the order summary. The handoff is fire-and-forget: nothing is awaited
// and no order is persisted server-side.
type CheckoutService struct {
	cartService    *CartService
	whatsappNumber string
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cartService *CartService, whatsappNumber string) *CheckoutService {
	return &CheckoutService{
		cartService:    cartService,
		whatsappNumber: whatsappNumber,
	}
}

// BuildOrderSummary renders the plain-text order message sent over the
// deep link
func BuildOrderSummary(customer models.CustomerInfo, cart *models.Cart) string {
	var b strings.Builder
	b.WriteString("🛍️ Nouvelle commande\n\n")
	b.WriteString(fmt.Sprintf("Client: %s\n", customer.Name))
	if customer.Phone != "" {
		b.WriteString(fmt.Sprintf("Téléphone: %s\n", customer.Phone))
	}
	if customer.Address != "" {
		b.WriteString(fmt.Sprintf("Adresse: %s\n", customer.Address))
	}
	b.WriteString(fmt.Sprintf("Livraison: %s\n", customer.Delivery))
	b.WriteString(fmt.Sprintf("Paiement: %s\n\n", customer.Payment))

	b.WriteString("Articles:\n")
	for _, line := range cart.Lines {
		b.WriteString(fmt.Sprintf("- %s (taille %s) x%d = %s\n",
			line.Name, line.SelectedSize, line.Quantity,
			utils.FormatEUR(line.Price*line.Quantity)))
	}

	b.WriteString(fmt.Sprintf("\nTotal (%d articles): %s\n", cart.ItemCount(), utils.FormatEUR(cart.Total())))
	return b.String()
}

// Checkout builds the deep link for the session's cart and clears the cart
// after a successful handoff. An empty cart is rejected.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, customer models.CustomerInfo) (*models.CheckoutResponse, error) {
	cart, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	summary := BuildOrderSummary(customer, cart)
	link := fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsappNumber, url.QueryEscape(summary))

	resp := &models.CheckoutResponse{
		Link:      link,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}

	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to clear cart after handoff: %w", err)
	}
	return resp, nil
}
