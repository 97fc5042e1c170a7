// Package httpapi exposes the storefront and the admin back office as a JSON
// API over chi.
package httpapi

import (
	"errors"
	"net/http"

	"cym-store/internal/admin"
	"cym-store/internal/cart"
	"cym-store/internal/customer"
	"cym-store/internal/logger"
	"cym-store/internal/metrics"
	"cym-store/internal/order"
	"cym-store/internal/product"
	"cym-store/internal/storage"
)

var errNoSession = errors.New("no session on request")

type Deps struct {
	Products  product.Service
	Orders    order.Service
	Customers customer.Service
	Stats     metrics.Service
	// Backend holds the per-session slots (cart, admin flag).
	Backend storage.Backend
	// MerchantPhone receives the checkout WhatsApp message, E.164 with +.
	MerchantPhone string
}

type Handler struct {
	products      product.Service
	orders        order.Service
	customers     customer.Service
	stats         metrics.Service
	backend       storage.Backend
	merchantPhone string
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		products:      d.Products,
		orders:        d.Orders,
		customers:     d.Customers,
		stats:         d.Stats,
		backend:       d.Backend,
		merchantPhone: d.MerchantPhone,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) sessionStore(r *http.Request) (storage.Store, error) {
	sessionID := logger.SessionIDFrom(r.Context())
	if sessionID == "" {
		return nil, errNoSession
	}
	return storage.Scope(h.backend, sessionID)
}

// cartFor builds the cart of the requesting session. Services are cheap: all
// state lives in the backend.
func (h *Handler) cartFor(r *http.Request) (cart.Service, error) {
	store, err := h.sessionStore(r)
	if err != nil {
		return nil, err
	}
	return cart.NewService(cart.NewRepository(store)), nil
}

func (h *Handler) adminFor(r *http.Request) (*admin.Session, error) {
	store, err := h.sessionStore(r)
	if err != nil {
		return nil, err
	}
	return admin.NewSession(store), nil
}
