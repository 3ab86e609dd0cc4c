package router

import (
	"net/http"

	"camelia-boutique/app/controller"
)

type Controllers struct {
	Catalog  *controller.CatalogController
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
	Image    *controller.ImageController
	Admin    *controller.AdminController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers, derivativesDir string) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog routes - filtering via query parameters
	http.HandleFunc("/products", controllers.Catalog.ListProducts)

	// Cart routes - session selected via X-Session-ID header
	http.HandleFunc("/cart", controllers.Cart.HandleCart)
	http.HandleFunc("/cart/items", controllers.Cart.HandleItems)

	// Session-scoped category selection
	http.HandleFunc("/session/category", controllers.Cart.HandleCategory)

	// Checkout handoff
	http.HandleFunc("/checkout", controllers.Checkout.Checkout)

	// Image proxy with cache and fallback ladder
	http.HandleFunc("/images", controllers.Image.GetImage)

	// Generated derivatives are served directly from disk
	http.Handle("/images/catalog/", http.StripPrefix("/images/catalog/",
		http.FileServer(http.Dir(derivativesDir))))

	// Admin routes
	http.HandleFunc("/admin/catalog/sync", controllers.Admin.SyncCatalog)
	http.HandleFunc("/admin/catalog/render", controllers.Admin.RenderCatalog)
	http.HandleFunc("/admin/catalog/export", controllers.Admin.ExportCatalog)
}
