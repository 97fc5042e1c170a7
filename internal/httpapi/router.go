package httpapi

import (
	"net/http"

	"cym-store/internal/auth"
	"cym-store/internal/logger"
	"cym-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Paths under the strict rate-limit tier.
const (
	PathAdminLogin = "/api/admin/login"
	PathCheckout   = "/api/checkout"
)

type RouterOptions struct {
	Issuer       *auth.Issuer
	Limiter      *middleware.RateLimiter
	CORSOrigin   string
	SecureCookie bool
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	limiter := opts.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(PathAdminLogin, PathCheckout)
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigin))
	r.Use(middleware.Logging)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(opts.Issuer, opts.SecureCookie))
		r.Use(limiter.Middleware)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/categories", h.ListCategories)
			r.Get("/{id}", h.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{productId}", h.SetCartItemQuantity)
			r.Delete("/items/{productId}", h.RemoveCartItem)
		})

		r.Post("/checkout", h.Checkout)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.AdminLogin)
			r.Post("/logout", h.AdminLogout)
			r.Get("/session", h.AdminSession)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(h.backend))

				r.Get("/products", h.ListProducts)
				r.Post("/products", h.CreateProduct)
				r.Patch("/products/{id}", h.UpdateProduct)
				r.Delete("/products/{id}", h.DeleteProduct)

				r.Get("/orders", h.ListOrders)
				r.Patch("/orders/{id}/status", h.UpdateOrderStatus)

				r.Get("/customers", h.ListCustomers)
				r.Get("/stats", h.Stats)
			})
		})
	})

	return r
}
