package httpapi

import (
	"net/http"
	"strings"

	"cym-store/internal/cart"
	"cym-store/internal/logger"
	"cym-store/internal/notify"
	"cym-store/internal/order"
	"cym-store/internal/utils"

	"go.uber.org/zap"
)

type checkoutRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Platform string `json:"platform"`
}

type checkoutResponse struct {
	Order    *order.Order `json:"order"`
	Message  string       `json:"message"`
	WhatsApp notify.Link  `json:"whatsapp"`
}

// Checkout places the order for the session cart, empties the cart and
// returns the merchant message with the link that sends it.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx).With(zap.String("layer", "http"), zap.String("method", "Checkout"))

	var req checkoutRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)
	if name == "" || phone == "" || email == "" {
		writeServiceError(w, r, errCheckoutFields)
		return
	}

	c, err := h.cartFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items, err := c.Items(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(items) == 0 {
		writeServiceError(w, r, cart.ErrCartEmpty)
		return
	}

	placed, err := h.orders.PlaceOrder(ctx, name, phone, email, items)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	message := notify.FormatOrderMessage(name, phone, email, items, placed.Total)

	platform := notify.ParsePlatform(req.Platform)
	if strings.TrimSpace(req.Platform) == "" {
		platform = notify.PlatformFromUserAgent(r.UserAgent())
	}
	link := notify.BuildDeepLink(platform, h.merchantPhone, message)

	// the order exists; a stale cart is the lesser problem
	if err := c.Clear(ctx); err != nil {
		log.Warn("cart not cleared after checkout", zap.String("order_id", placed.ID), zap.Error(err))
	}

	utils.WriteJSON(w, http.StatusCreated, checkoutResponse{
		Order:    placed,
		Message:  message,
		WhatsApp: link,
	})
}
