package httpapi

import (
	"net/http"
	"strings"

	"cym-store/internal/cart"
	"cym-store/internal/product"
	"cym-store/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type addCartItemRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	summary, err := c.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, summary)
}

// AddCartItem checks the request against the live catalog before the cart
// stores its snapshot: positive quantity within stock, and customization only
// on customizable products.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addCartItemRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if strings.TrimSpace(req.ProductID) == "" {
		writeServiceError(w, r, cart.ErrInvalidProductID)
		return
	}
	if _, err := uuid.Parse(req.ProductID); err != nil {
		writeServiceError(w, r, product.ErrProductNotFound)
		return
	}
	if req.Quantity < 1 {
		writeServiceError(w, r, cart.ErrInvalidQuantity)
		return
	}

	c, err := h.cartFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	p, err := h.products.GetByID(ctx, req.ProductID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if req.Quantity > p.Stock {
		writeServiceError(w, r, cart.ErrInsufficientStock)
		return
	}

	customization := strings.TrimSpace(req.Customization)
	if customization != "" && !p.Customizable {
		writeServiceError(w, r, cart.ErrNotCustomizable)
		return
	}

	if err := c.AddItem(ctx, *p, req.Quantity, customization); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeCartSummary(w, r, c)
}

// SetCartItemQuantity ignores quantities below one with 204, leaving the cart
// untouched.
func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if req.Quantity < 1 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	c, err := h.cartFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := c.SetQuantity(r.Context(), chi.URLParam(r, "productId"), req.Quantity); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeCartSummary(w, r, c)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := c.RemoveLine(r.Context(), chi.URLParam(r, "productId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeCartSummary(w, r, c)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := c.Clear(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCartSummary(w http.ResponseWriter, r *http.Request, c cart.Service) {
	summary, err := c.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
