package repository

import (
	"context"

	"camelia-boutique/models"
)

// CartStore persists one cart per session. Load returns an empty cart for
// unknown sessions and for unreadable stored state; it never fails the
// caller over corrupt data.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore holds session-scoped UI state, currently the selected
// category shared between storefront views
type SessionStore interface {
	SetCategory(ctx context.Context, sessionID, category string) error
	GetCategory(ctx context.Context, sessionID string) (string, error)
}

// CatalogRepositoryInterface mirrors the generated catalog into Postgres
// for operator queries
type CatalogRepositoryInterface interface {
	UpsertProducts(ctx context.Context, products []models.Product) (inserted int, updated int, err error)
	CountProducts(ctx context.Context) (int, error)
}
