package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengamart/storefront/internal/checkout"
	"github.com/jengamart/storefront/internal/store"
	"github.com/jengamart/storefront/pkg/health"
	"github.com/jengamart/storefront/pkg/middleware"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Checkout *checkout.Service
	Catalog  CatalogAPI
	Auth     AuthAPI
	Orders   OrdersAPI
	Media    MediaAPI

	Health        *health.Handler
	Logger        *slog.Logger
	TokenValidate middleware.TokenValidator
	CORS          middleware.CORSConfig
	RateLimitRPS  int
	RateBurst     int
	PprofCIDRs    []string
}

// NewRouter creates the storefront's chi router with all routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateBurst, deps.Logger))
	}

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, deps.PprofCIDRs, deps.Logger)

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	cartHandler := NewCartHandler(deps.Cart, deps.Logger)
	wishlistHandler := NewWishlistHandler(deps.Wishlist, deps.Catalog, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Logger)
	ordersHandler := NewOrdersHandler(deps.Orders, deps.Logger)
	adminHandler := NewAdminHandler(deps.Media, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog browsing.
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{productID}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)

		// Public auth endpoints.
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/password-reset", authHandler.PasswordReset)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.TokenValidate))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Get("/summary", cartHandler.GetSummary)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{itemID}", cartHandler.UpdateItem)
				r.Delete("/items/{itemID}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.List)
				r.Post("/", wishlistHandler.Add)
				r.Get("/products/{productID}", wishlistHandler.Contains)
				r.Delete("/products/{productID}", wishlistHandler.RemoveByProduct)
				r.Delete("/items/{itemID}", wishlistHandler.RemoveItem)
				r.Post("/items/{itemID}/move-to-cart", wishlistHandler.MoveToCart)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", checkoutHandler.Start)
				r.Get("/", checkoutHandler.Get)
				r.Put("/address", checkoutHandler.SetAddress)
				r.Put("/services", checkoutHandler.SetServices)
				r.Put("/payment", checkoutHandler.SetPayment)
				r.Post("/next", checkoutHandler.Next)
				r.Post("/back", checkoutHandler.Back)
				r.Get("/quote", checkoutHandler.Quote)
				r.Post("/order", checkoutHandler.PlaceOrder)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordersHandler.List)
				r.Get("/{orderID}", ordersHandler.Get)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Post("/products/images", adminHandler.UploadImage)
			})
		})
	})

	return r
}
