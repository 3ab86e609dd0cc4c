package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"camelia-boutique/db"
	"camelia-boutique/models"
)

// CatalogRepository mirrors the generated catalog into Postgres so
// operators can query the live assortment with SQL. The storefront itself
// keeps reading the JSON file; this table is never the source of truth.
// Implements CatalogRepositoryInterface.
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// UpsertProducts writes every catalog product into the products table.
// Existing ids are updated in place, new ids inserted. Sizes and images
// are stored as JSONB columns since the storefront never queries inside
// them.
func (r *CatalogRepository) UpsertProducts(ctx context.Context, products []models.Product) (int, int, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (id, name, category, material, color, description, price, primary_image, images, sizes, is_new, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			material = EXCLUDED.material,
			color = EXCLUDED.color,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			primary_image = EXCLUDED.primary_image,
			images = EXCLUDED.images,
			sizes = EXCLUDED.sizes,
			is_new = EXCLUDED.is_new,
			synced_at = NOW()
		RETURNING (xmax = 0)
	`

	inserted := 0
	updated := 0
	for _, p := range products {
		images, err := json.Marshal(p.Images)
		if err != nil {
			return inserted, updated, fmt.Errorf("failed to marshal images for product %d: %w", p.ID, err)
		}
		sizes, err := json.Marshal(p.Sizes)
		if err != nil {
			return inserted, updated, fmt.Errorf("failed to marshal sizes for product %d: %w", p.ID, err)
		}

		var wasInsert bool
		err = tx.QueryRowContext(ctx, query,
			p.ID, p.Name, p.Category, p.Material, p.Color, p.Description,
			p.Price, p.PrimaryImage, images, sizes, p.IsNew,
		).Scan(&wasInsert)
		if err != nil {
			return inserted, updated, fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, updated, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Catalog mirrored to database: %d inserted, %d updated", inserted, updated)
	return inserted, updated, nil
}

// CountProducts returns how many products are currently mirrored
func (r *CatalogRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
