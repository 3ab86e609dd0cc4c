package repository

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"camelia-boutique/models"
)

// MemoryCartStore is an in-process CartStore for tests and single-node
// development. Carts are stored as JSON to exercise the same corruption
// handling path as the Redis store.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string][]byte
}

// NewMemoryCartStore creates a new MemoryCartStore
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: map[string][]byte{}}
}

var _ CartStore = (*MemoryCartStore)(nil)

// Load returns the cart for a session, empty when absent or corrupt
func (m *MemoryCartStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.carts[sessionID]
	if !ok {
		return &models.Cart{SessionID: sessionID}, nil
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("⚠️  Corrupt cart state for session %s, starting empty: %v", sessionID, err)
		return &models.Cart{SessionID: sessionID}, nil
	}
	cart.SessionID = sessionID
	return &cart, nil
}

// Save stores the cart
func (m *MemoryCartStore) Save(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cart.SessionID] = data
	return nil
}

// Delete removes the cart
func (m *MemoryCartStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

// Corrupt overwrites a session's stored value with invalid JSON. Test hook
// for the corruption-recovery path.
func (m *MemoryCartStore) Corrupt(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = []byte("{not json")
}

// MemorySessionStore is the in-process SessionStore counterpart
type MemorySessionStore struct {
	mu         sync.Mutex
	categories map[string]string
}

// NewMemorySessionStore creates a new MemorySessionStore
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{categories: map[string]string{}}
}

var _ SessionStore = (*MemorySessionStore)(nil)

// SetCategory records the selected category for a session
func (m *MemorySessionStore) SetCategory(ctx context.Context, sessionID, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[sessionID] = category
	return nil
}

// GetCategory returns the selected category, "" when none is set
func (m *MemorySessionStore) GetCategory(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categories[sessionID], nil
}
