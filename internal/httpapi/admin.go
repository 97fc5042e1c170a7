package httpapi

import (
	"net/http"

	"cym-store/internal/order"
	"cym-store/internal/utils"
)

type loginRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	session, err := h.adminFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ok, err := session.Authenticate(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !ok {
		utils.WriteJSONError(w, "mot de passe incorrect", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: true})
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	session, err := h.adminFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := session.LogOut(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.adminFor(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ok, err := session.IsAuthenticated(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: ok})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeServiceError(w, r, order.ErrOrderNotFound)
		return
	}

	var req statusRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, customers)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}
