// Package routes wires repositories, services, and controllers onto the
// HTTP router.
package routes

import (
	"time"

	"github.com/aurigalabs/storefront/app/controllers"
	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/config"
	"github.com/aurigalabs/storefront/pkg/graphql"
	"github.com/aurigalabs/storefront/pkg/logger"
	"github.com/aurigalabs/storefront/pkg/metrics"
	"github.com/aurigalabs/storefront/pkg/middleware"
	"github.com/aurigalabs/storefront/pkg/rbac"
	"github.com/aurigalabs/storefront/pkg/reqid"
	"github.com/aurigalabs/storefront/pkg/router"
	"github.com/aurigalabs/storefront/pkg/ws"
)

// NotificationHub carries live pushes to connected users. Started by
// RegisterAPI; services reach it through the services.Pusher interface.
var NotificationHub = ws.NewHub()

// RegisterAPI builds the full dependency graph and mounts every route.
// Requires database.Connect to have run.
func RegisterAPI(r *router.Router) {
	// Repositories.
	productRepo := repositories.NewProductRepository()
	reviewRepo := repositories.NewReviewRepository()
	addressRepo := repositories.NewAddressRepository()
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()
	notificationRepo := repositories.NewNotificationRepository()
	settingsRepo := repositories.NewSettingsRepository()

	// Services.
	productService := services.NewProductService(productRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	addressService := services.NewAddressService(addressRepo)
	orderService := services.NewOrderService(orderRepo)
	authService := services.NewAuthService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, NotificationHub)
	settingsService := services.NewSettingsService(settingsRepo)

	go NotificationHub.Run()
	notificationService.RegisterListeners()

	// Controllers.
	authController := controllers.NewAuthController(authService, userRepo)
	productController := controllers.NewProductController(productService)
	reviewController := controllers.NewReviewController(reviewService)
	addressController := controllers.NewAddressController(addressService)
	orderController := controllers.NewOrderController(orderService)
	notificationController := controllers.NewNotificationController(notificationService, NotificationHub)
	settingsController := controllers.NewSettingsController(settingsService)

	// Global middleware chain. Recovery wraps everything mounted below it.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	corsOpts := middleware.DefaultCORSOptions()
	if config.AppEnv() == "production" {
		corsOpts.AllowedOrigins = []string{config.FrontendURL()}
	}
	r.Use(middleware.CORS(corsOpts))
	r.Use(middleware.RateLimit(300, time.Minute))

	api := r.Group("/api")

	// Public.
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)

	api.Get("/products", "products.index", productController.Index)
	api.Get("/products/{id}", "products.show", productController.Show)
	api.Get("/products/slug/{slug}", "products.show_by_slug", productController.ShowBySlug)
	api.Get("/products/{id}/reviews", "reviews.index", reviewController.IndexForProduct)

	api.Get("/settings/public", "settings.public", settingsController.Public)

	// Authenticated.
	protected := api.Group("", middleware.Auth)
	protected.Get("/auth/profile", "auth.profile", authController.Profile)

	protected.Post("/reviews", "reviews.create", reviewController.Create)
	protected.Delete("/reviews/{id}", "reviews.delete", reviewController.Delete)

	protected.Get("/addresses", "addresses.index", addressController.Index)
	protected.Post("/addresses", "addresses.create", addressController.Create)
	protected.Put("/addresses/{id}", "addresses.update", addressController.Update)
	protected.Patch("/addresses/{id}/default", "addresses.set_default", addressController.SetDefault)
	protected.Delete("/addresses/{id}", "addresses.delete", addressController.Delete)

	protected.Get("/orders", "orders.index", orderController.Index)
	protected.Post("/orders", "orders.create", orderController.Create)
	protected.Get("/orders/{id}", "orders.show", orderController.Show)
	protected.Get("/orders/number/{number}", "orders.show_by_number", orderController.ShowByNumber)

	protected.Get("/notifications", "notifications.index", notificationController.Index)
	protected.Get("/notifications/unread-count", "notifications.unread", notificationController.UnreadCount)
	protected.Patch("/notifications/{id}/read", "notifications.read", notificationController.MarkRead)

	// Admin.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	admin.Post("/products", "admin.products.create", productController.Create)
	admin.Put("/products/{id}", "admin.products.update", productController.Update)
	admin.Delete("/products/{id}", "admin.products.delete", productController.Delete)
	admin.Patch("/orders/{id}/status", "admin.orders.status", orderController.UpdateStatus)
	admin.Get("/settings/{key}", "admin.settings.show", settingsController.Show)
	admin.Put("/settings/{key}", "admin.settings.update", settingsController.Update)

	// WebSocket notifications, authenticated like the REST surface.
	r.Get("/ws/notifications", "notifications.subscribe", notificationController.Subscribe, middleware.Auth)

	// GraphQL read-only catalog.
	gqlHandler, err := graphql.Handler(productService)
	if err != nil {
		logger.Error("routes: graphql schema", "error", err)
	} else {
		api.Post("/graphql", "graphql", gqlHandler)
	}

	// Prometheus metrics.
	r.Handle("/metrics", metrics.Handler())
}
