package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"camelia-boutique/models"
	"camelia-boutique/repository"
	"camelia-boutique/service"

	"github.com/google/uuid"
)

// SessionHeader carries the client session ID; a fresh ID is issued when
// the header is absent
const SessionHeader = "X-Session-ID"

// sessionID returns the request's session ID, issuing one if needed, and
// echoes it on the response so the client can keep it
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

// CartController handles HTTP requests for session carts
type CartController struct {
	cartService *service.CartService
	sessions    repository.SessionStore
	catalog     *CatalogController
}

// NewCartController creates a new CartController
func NewCartController(cartService *service.CartService, sessions repository.SessionStore, catalog *CatalogController) *CartController {
	return &CartController{
		cartService: cartService,
		sessions:    sessions,
		catalog:     catalog,
	}
}

// cartView is the cart plus its derived values, recomputed per response
type cartView struct {
	Lines     []models.CartLine `json:"lines"`
	ItemCount int               `json:"itemCount"`
	Total     int               `json:"total"`
	Message   string            `json:"message,omitempty"`
}

func writeCart(w http.ResponseWriter, cart *models.Cart, message string) {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	view := cartView{
		Lines:     lines,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
		Message:   message,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("❌ Error encoding cart response: %v", err)
	}
}

type cartItemRequest struct {
	ProductID int    `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// HandleCart routes /cart by method: GET returns the cart, DELETE clears it
func (c *CartController) HandleCart(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		cart, err := c.cartService.Get(ctx, session)
		if err != nil {
			log.Printf("❌ GetCart: %v", err)
			http.Error(w, "Failed to load cart", http.StatusInternalServerError)
			return
		}
		writeCart(w, cart, "")
	case http.MethodDelete:
		if err := c.cartService.Clear(ctx, session); err != nil {
			log.Printf("❌ ClearCart: %v", err)
			http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
			return
		}
		writeCart(w, &models.Cart{SessionID: session}, "")
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleItems routes /cart/items: POST adds one unit, DELETE removes a
// line, PUT sets a line's quantity
func (c *CartController) HandleItems(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	ctx := r.Context()

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Cart items: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPost:
		product, ok := c.catalog.Lookup(req.ProductID)
		if !ok {
			// Unknown ids are a no-op, not an error
			log.Printf("⚠️  AddItem: unknown product id %d", req.ProductID)
			cart, err := c.cartService.Get(ctx, session)
			if err != nil {
				http.Error(w, "Failed to load cart", http.StatusInternalServerError)
				return
			}
			writeCart(w, cart, "")
			return
		}
		cart, err := c.cartService.Add(ctx, session, product, req.Size)
		if err != nil {
			log.Printf("❌ AddItem: %v", err)
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
			return
		}
		writeCart(w, cart, fmt.Sprintf("%s (taille %s) ajouté au panier", product.Name, req.Size))
	case http.MethodDelete:
		cart, err := c.cartService.Remove(ctx, session, req.ProductID, req.Size)
		if err != nil {
			log.Printf("❌ RemoveItem: %v", err)
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
			return
		}
		writeCart(w, cart, "")
	case http.MethodPut:
		cart, err := c.cartService.SetQuantity(ctx, session, req.ProductID, req.Size, req.Quantity)
		if err != nil {
			log.Printf("❌ SetQuantity: %v", err)
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
			return
		}
		writeCart(w, cart, "")
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type categoryRequest struct {
	Category string `json:"category"`
}

// HandleCategory routes /session/category: PUT records the selected
// category for the session, GET returns it. This is the shared state
// slice every view reads instead of broadcasting events.
func (c *CartController) HandleCategory(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	ctx := r.Context()

	switch r.Method {
	case http.MethodPut:
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if err := c.sessions.SetCategory(ctx, session, req.Category); err != nil {
			log.Printf("❌ SetCategory: %v", err)
			http.Error(w, "Failed to save selection", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodGet:
		category, err := c.sessions.GetCategory(ctx, session)
		if err != nil {
			log.Printf("❌ GetCategory: %v", err)
			http.Error(w, "Failed to read selection", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categoryRequest{Category: category})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
