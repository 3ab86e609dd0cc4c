package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"camelia-boutique/models"
	"camelia-boutique/service"
)

// CheckoutController handles the messaging handoff
type CheckoutController struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(checkoutService *service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// Checkout handles POST /checkout: builds the WhatsApp deep link for the
// session's cart and clears the cart. Nothing is persisted and no
// confirmation is awaited.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := sessionID(w, r)

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Checkout: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Customer.Name) == "" {
		http.Error(w, "customer name is required", http.StatusBadRequest)
		return
	}

	resp, err := c.checkoutService.Checkout(r.Context(), session, req.Customer)
	if err != nil {
		if strings.Contains(err.Error(), "cart is empty") {
			http.Error(w, "Cart is empty", http.StatusBadRequest)
			return
		}
		log.Printf("❌ Checkout: %v", err)
		http.Error(w, "Checkout failed", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Checkout handoff built for session %s: %d items", session, resp.ItemCount)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("❌ Checkout: Error encoding response: %v", err)
	}
}
