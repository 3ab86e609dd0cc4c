package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"camelia-boutique/models"
	"camelia-boutique/service"
	"camelia-boutique/utils"
)

// CatalogController serves the generated catalog with optional filtering
type CatalogController struct {
	products []models.Product
}

// NewCatalogController creates a new CatalogController over the loaded
// catalog
func NewCatalogController(products []models.Product) *CatalogController {
	return &CatalogController{
		products: products,
	}
}

// parseSet turns a comma-separated query parameter into a selection set
func parseSet(raw string) map[string]bool {
	set := map[string]bool{}
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			set[v] = true
		}
	}
	return set
}

// criteriaFromQuery builds FilterCriteria from the request query: q, min,
// max (euro amounts), categories, colors, sizes (comma-separated)
func criteriaFromQuery(r *http.Request) models.FilterCriteria {
	criteria := models.NewFilterCriteria()
	q := r.URL.Query()

	criteria.SearchText = q.Get("q")
	if min := utils.ParsePriceCents(q.Get("min")); min >= 0 {
		criteria.PriceMin = min
	}
	if max := utils.ParsePriceCents(q.Get("max")); max >= 0 {
		criteria.PriceMax = max
	}
	criteria.Categories = parseSet(q.Get("categories"))
	criteria.Colors = parseSet(q.Get("colors"))
	criteria.Sizes = parseSet(q.Get("sizes"))
	return criteria
}

// ListProducts handles GET /products. Without query parameters it returns
// the whole catalog; with them it applies the filter engine.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filtered := service.ApplyFilter(criteriaFromQuery(r), c.products)
	if filtered == nil {
		filtered = []models.Product{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(filtered); err != nil {
		log.Printf("❌ ListProducts: Error encoding response: %v", err)
	}
}

// Lookup returns the catalog product with the given id
func (c *CatalogController) Lookup(id int) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
