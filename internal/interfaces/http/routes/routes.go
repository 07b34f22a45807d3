// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/cart"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/domain/order"
	"github.com/your-org/grocery-backend/internal/domain/prefs"
	"github.com/your-org/grocery-backend/internal/domain/review"
	"github.com/your-org/grocery-backend/internal/domain/subscription"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/interfaces/http/handlers"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
	"github.com/your-org/grocery-backend/internal/pkg/pdf"
)

// Services bundles the domain managers the HTTP layer exposes
type Services struct {
	Catalog       *catalog.Service
	Auth          *user.Service
	Addresses     *user.AddressService
	Cart          *cart.Service
	Subscriptions *subscription.Service
	Reviews       *review.Service
	Orders        *order.Service
	Prefs         *prefs.Service
	PDF           *pdf.Service
}

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	setupAuthRoutes(rg, svcs, cfg)
	setupProductRoutes(rg, svcs, cfg)
	setupCartRoutes(rg, svcs, cfg)
	setupAddressRoutes(rg, svcs, cfg)
	setupSubscriptionRoutes(rg, svcs, cfg)
	setupOrderRoutes(rg, svcs, cfg)
	setupPrefsRoutes(rg, svcs, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(svcs.Auth)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

func setupProductRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(svcs.Catalog, svcs.Prefs)
	reviewHandler := handlers.NewReviewHandler(svcs.Reviews, svcs.Auth)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/categories/:id/subcategories", productHandler.GetSubCategories)
		products.GET("/:id", productHandler.GetProduct)

		products.GET("/:id/reviews", reviewHandler.GetReviews)
		products.GET("/:id/reviews/summary", reviewHandler.GetSummary)

		protected := products.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/:id/reviews", reviewHandler.CreateReview)
			protected.PUT("/:id/reviews/:reviewId", reviewHandler.UpdateReview)
			protected.DELETE("/:id/reviews/:reviewId", reviewHandler.DeleteReview)
			protected.POST("/:id/reviews/:reviewId/helpful", reviewHandler.MarkHelpful)
		}
	}
}

func setupCartRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(svcs.Cart)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:productId", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

func setupAddressRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	addressHandler := handlers.NewAddressHandler(svcs.Addresses)

	addresses := rg.Group("/addresses")
	addresses.Use(middleware.AuthMiddleware(cfg))
	{
		addresses.GET("", addressHandler.GetAddresses)
		addresses.GET("/default", addressHandler.GetDefaultAddress)
		addresses.POST("", addressHandler.CreateAddress)
		addresses.PUT("/:id", addressHandler.UpdateAddress)
		addresses.DELETE("/:id", addressHandler.DeleteAddress)
		addresses.PUT("/:id/default", addressHandler.SetDefaultAddress)
	}
}

func setupSubscriptionRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	subscriptionHandler := handlers.NewSubscriptionHandler(svcs.Subscriptions)

	subscriptions := rg.Group("/subscriptions")
	subscriptions.Use(middleware.AuthMiddleware(cfg))
	{
		subscriptions.GET("", subscriptionHandler.GetSubscriptions)
		subscriptions.GET("/:id", subscriptionHandler.GetSubscription)
		subscriptions.POST("", subscriptionHandler.CreateSubscription)
		subscriptions.PUT("/:id", subscriptionHandler.UpdateSubscription)
		subscriptions.PUT("/:id/pause", subscriptionHandler.PauseSubscription)
		subscriptions.PUT("/:id/resume", subscriptionHandler.ResumeSubscription)
		subscriptions.DELETE("/:id", subscriptionHandler.CancelSubscription)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(svcs.Orders, svcs.PDF)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/track", orderHandler.TrackOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
		orders.GET("/:id/invoice", orderHandler.DownloadInvoice)
	}
}

func setupPrefsRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	prefsHandler := handlers.NewPrefsHandler(svcs.Prefs)

	preferences := rg.Group("/preferences")
	preferences.Use(middleware.AuthMiddleware(cfg))
	{
		preferences.GET("", prefsHandler.GetPreferences)
		preferences.PUT("/location", prefsHandler.SetLocation)
		preferences.PUT("/language", prefsHandler.SetLanguage)
		preferences.POST("/searches", prefsHandler.RecordSearch)
		preferences.DELETE("/searches", prefsHandler.ClearSearches)
	}
}
