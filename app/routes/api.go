package routes

import (
	"net/http"

	"github.com/vendora/vendora/app/controllers"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/router"
	"gorm.io/gorm"
)

// RegisterAPI wires every endpoint. The tenant resolver and identity
// middleware run globally (kernel level); RequireAuth guards the endpoints
// that have no anonymous behavior.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	vendorRepo := repositories.NewVendorRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)

	authController := controllers.NewAuthController(services.NewAuthService(db))
	productController := controllers.NewProductController(productRepo)
	orderController := controllers.NewOrderController(services.NewOrderService(db), orderRepo, customerRepo)
	vendorController := controllers.NewVendorController(vendorRepo)

	api := r.Group("/api")

	// Public auth endpoints.
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)
	api.Post("/auth/refresh", "auth.refresh", authController.Refresh)

	// Products: reads are open (tenant scoping limits what is visible),
	// writes are role-gated inside the controller.
	products := api.Group("/products")
	products.Get("", "products.index", productController.Index)
	products.Get("/{id}", "products.show", productController.Show)
	products.Post("", "products.store", productController.Store, middleware.RequireAuth)
	products.Put("/{id}", "products.update", productController.Update, middleware.RequireAuth)
	products.Patch("/{id}", "products.patch", productController.Update, middleware.RequireAuth)
	products.Delete("/{id}", "products.destroy", productController.Destroy, middleware.RequireAuth)

	// Orders: everything requires an authenticated caller.
	orders := api.Group("/orders", middleware.RequireAuth)
	orders.Get("", "orders.index", orderController.Index)
	orders.Get("/my", "orders.my", orderController.My)
	orders.Get("/{id}", "orders.show", orderController.Show)
	orders.Post("", "orders.store", orderController.Store)
	orders.Put("/{id}", "orders.update", orderController.Update)
	orders.Patch("/{id}", "orders.patch", orderController.Update)
	orders.Delete("/{id}", "orders.destroy", orderController.Destroy)
	orders.Patch("/{id}/status", "orders.status", orderController.Status)
	orders.Patch("/{id}/assign-staff", "orders.assign-staff", orderController.AssignStaff)

	// Vendors: owner-only, own record.
	vendors := api.Group("/vendors", middleware.RequireAuth)
	vendors.Get("", "vendors.index", vendorController.Index)
	vendors.Post("", "vendors.store", vendorController.Store)
	vendors.Get("/{id}", "vendors.show", vendorController.Show)
	vendors.Put("/{id}", "vendors.update", vendorController.Update)
	vendors.Patch("/{id}", "vendors.patch", vendorController.Update)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
}
