package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"camelia-boutique/models"
	"camelia-boutique/repository"
	"camelia-boutique/service"
)

// AdminController hosts the operator endpoints: mirroring the catalog into
// Postgres and exporting a printable PDF
type AdminController struct {
	products      []models.Product
	catalogRepo   repository.CatalogRepositoryInterface
	exportService *service.ExportService
	baseURL       string
}

// NewAdminController creates a new AdminController
func NewAdminController(products []models.Product, catalogRepo repository.CatalogRepositoryInterface, exportService *service.ExportService, baseURL string) *AdminController {
	return &AdminController{
		products:      products,
		catalogRepo:   catalogRepo,
		exportService: exportService,
		baseURL:       baseURL,
	}
}

// SyncCatalog handles POST /admin/catalog/sync: upserts the loaded catalog
// into the products table and reports stats
func (c *AdminController) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.catalogRepo == nil {
		http.Error(w, "Database is not configured", http.StatusServiceUnavailable)
		return
	}

	inserted, updated, err := c.catalogRepo.UpsertProducts(r.Context(), c.products)
	if err != nil {
		log.Printf("❌ SyncCatalog: %v", err)
		http.Error(w, fmt.Sprintf("Sync failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"inserted": inserted,
		"updated":  updated,
		"total":    len(c.products),
	})
}

// RenderCatalog handles GET /admin/catalog/render: the printable HTML that
// the PDF export navigates to
func (c *AdminController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html, err := c.exportService.RenderHTML(c.products)
	if err != nil {
		log.Printf("❌ RenderCatalog: %v", err)
		http.Error(w, "Render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// ExportCatalog handles GET /admin/catalog/export: prints the render page
// to PDF via headless Chrome
func (c *AdminController) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	renderURL := c.baseURL + "/admin/catalog/render"
	pdf, err := c.exportService.GeneratePDF(r.Context(), renderURL)
	if err != nil {
		log.Printf("❌ ExportCatalog: %v", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="catalogue.pdf"`)
	w.Write(pdf)
}
