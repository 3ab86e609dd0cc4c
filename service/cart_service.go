package service

import (
	"context"
	"fmt"
	"log"

	"camelia-boutique/models"
	"camelia-boutique/repository"
)

// Notifier receives the transient "item added" notification fired on
// every successful add
type Notifier interface {
	ItemAdded(productName, size string)
}

// LogNotifier is the default Notifier; it only logs
type LogNotifier struct{}

// ItemAdded logs the added item
func (LogNotifier) ItemAdded(productName, size string) {
	log.Printf("🛒 Ajouté au panier: %s (taille %s)", productName, size)
}

// CartService applies cart mutations for a session and persists the
// resulting state after every change. Mutations are applied in the order
// received; totals are always derived from current lines, never stored.
type CartService struct {
	store    repository.CartStore
	notifier Notifier
}

// NewCartService creates a new CartService
func NewCartService(store repository.CartStore, notifier Notifier) *CartService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &CartService{
		store:    store,
		notifier: notifier,
	}
}

// Get returns the current cart for a session
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// Add puts one unit of (product, size) in the cart. An existing line with
// the same key has its quantity incremented instead of being duplicated.
func (s *CartService) Add(ctx context.Context, sessionID string, product models.Product, size string) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := models.CartKey{ProductID: product.ID, Size: size}
	found := false
	for i := range cart.Lines {
		if cart.Lines[i].Key() == key {
			cart.Lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.Lines = append(cart.Lines, models.CartLine{
			ProductID:    product.ID,
			SelectedSize: size,
			Quantity:     1,
			Name:         product.Name,
			Price:        product.Price,
			Image:        product.PrimaryImage,
		})
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}

	s.notifier.ItemAdded(product.Name, size)
	return cart, nil
}

// Remove deletes the matching line unconditionally; unknown keys are a no-op
func (s *CartService) Remove(ctx context.Context, sessionID string, productID int, size string) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := models.CartKey{ProductID: productID, Size: size}
	lines := cart.Lines[:0]
	for _, l := range cart.Lines {
		if l.Key() != key {
			lines = append(lines, l)
		}
	}
	cart.Lines = lines

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	return cart, nil
}

// SetQuantity sets the quantity of a line. Negative values are rejected as
// a logged no-op; zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, productID int, size string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		log.Printf("⚠️  Rejected negative quantity %d for product %d (%s)", quantity, productID, size)
		return s.store.Load(ctx, sessionID)
	}
	if quantity == 0 {
		return s.Remove(ctx, sessionID, productID, size)
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := models.CartKey{ProductID: productID, Size: size}
	for i := range cart.Lines {
		if cart.Lines[i].Key() == key {
			cart.Lines[i].Quantity = quantity
			if err := s.store.Save(ctx, cart); err != nil {
				return nil, fmt.Errorf("failed to persist cart: %w", err)
			}
			return cart, nil
		}
	}

	log.Printf("⚠️  SetQuantity on absent line: product %d (%s)", productID, size)
	return cart, nil
}

// Clear empties the cart, used after a successful checkout handoff
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
