package controller

import (
	"log"
	"net/http"

	"camelia-boutique/service"
)

// ImageController proxies remote product images through the loader so the
// storefront benefits from the shared cache and the fallback ladder
type ImageController struct {
	loader *service.ImageLoader
}

// NewImageController creates a new ImageController
func NewImageController(loader *service.ImageLoader) *ImageController {
	return &ImageController{
		loader: loader,
	}
}

// GetImage handles GET /images?src=...&fallback=...&refresh=1.
// refresh=1 evicts the reference and reloads with a fresh cache-buster.
func (c *ImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	src := r.URL.Query().Get("src")
	if src == "" {
		http.Error(w, "src parameter is required", http.StatusBadRequest)
		return
	}
	fallback := r.URL.Query().Get("fallback")

	var result service.LoadResult
	if r.URL.Query().Get("refresh") == "1" {
		result = c.loader.Refresh(r.Context(), src, fallback)
	} else {
		result = c.loader.Load(r.Context(), src, fallback, false)
	}

	if result.State != service.StateLoaded {
		log.Printf("⚠️  Image unavailable after %d attempts: %s", result.Attempts, src)
		http.Error(w, "Image unavailable", http.StatusNotFound)
		return
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}
