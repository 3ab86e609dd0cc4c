package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"camelia-boutique/models"

	"golang.org/x/sync/errgroup"
)

// imageBatchSize bounds how many products have their images generated at
// once, to keep outbound connections to the image host in check
const imageBatchSize = 4

// AssembleStats summarizes one catalog run for operator visibility
type AssembleStats struct {
	Total   int
	Built   int
	Skipped int
	Skips   map[models.SkipReason]int
}

// CatalogService assembles the final catalog: normalizes every row,
// generates image derivatives for surviving products, sorts by id and
// serializes the result to the catalog JSON file.
type CatalogService struct {
	normalizer *Normalizer
	optimizer  *ImageOptimizer
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(normalizer *Normalizer, optimizer *ImageOptimizer) *CatalogService {
	return &CatalogService{
		normalizer: normalizer,
		optimizer:  optimizer,
	}
}

// Assemble runs the normalizer over every row and the derivative generator
// over every surviving product. The only fatal condition is zero products
// surviving normalization; individual image failures degrade in place.
func (s *CatalogService) Assemble(ctx context.Context, headers []string, rows []models.RawRow) ([]models.Product, AssembleStats, error) {
	stats := AssembleStats{
		Total: len(rows),
		Skips: map[models.SkipReason]int{},
	}

	var products []models.Product
	for i, row := range rows {
		product, reason := s.normalizer.Normalize(headers, row)
		if product == nil {
			log.Printf("⏭️  Skipping row %d: %s", i+2, reason)
			stats.Skipped++
			stats.Skips[reason]++
			continue
		}
		products = append(products, *product)
	}

	if len(products) == 0 {
		return nil, stats, fmt.Errorf("no products survived normalization (%d rows, %d skipped)", stats.Total, stats.Skipped)
	}
	stats.Built = len(products)

	if err := s.optimizer.EnsureOutputDir(); err != nil {
		return nil, stats, err
	}

	// Generate derivatives with bounded cross-product concurrency. Each
	// goroutine mutates only its own product.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageBatchSize)
	for i := range products {
		g.Go(func() error {
			p := &products[i]
			SortSizes(p.Sizes)
			for j, src := range p.Images {
				set := s.optimizer.Generate(gctx, src, p.Name, j)
				p.Images[j] = set.Base
			}
			p.PrimaryImage = p.Images[0]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	log.Printf("🎉 Catalog assembled: %d products built, %d rows skipped of %d total", stats.Built, stats.Skipped, stats.Total)
	return products, stats, nil
}

// WriteCatalog serializes products as pretty-printed UTF-8 JSON
func (s *CatalogService) WriteCatalog(products []models.Product, path string) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	log.Printf("✓ Catalog written: %s (%d bytes)", path, len(data))
	return nil
}

// Run assembles the catalog and writes it to outPath
func (s *CatalogService) Run(ctx context.Context, headers []string, rows []models.RawRow, outPath string) (AssembleStats, error) {
	products, stats, err := s.Assemble(ctx, headers, rows)
	if err != nil {
		return stats, err
	}
	if err := s.WriteCatalog(products, outPath); err != nil {
		return stats, err
	}
	return stats, nil
}

// LoadCatalog reads a previously generated catalog file
func LoadCatalog(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return products, nil
}
