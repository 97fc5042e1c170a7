package httpapi

import (
	"net/http"

	"cym-store/internal/product"
	"cym-store/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := product.ListOptions{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Limit:    utils.ParsePositiveInt(q.Get("limit"), 0),
	}

	products, err := h.products.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		writeServiceError(w, r, product.ErrProductNotFound)
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in product.NewProductInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}

	p, err := h.products.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		writeServiceError(w, r, product.ErrProductNotFound)
		return
	}

	var in product.UpdateProductInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}

	p, err := h.products.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		writeServiceError(w, r, product.ErrProductNotFound)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// productIDParam reads {id} and rejects anything the store could not have
// issued.
func productIDParam(r *http.Request) (string, bool) {
	return uuidParam(r, "id")
}

func uuidParam(r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}
