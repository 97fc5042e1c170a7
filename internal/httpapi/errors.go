package httpapi

import (
	"errors"
	"net/http"

	"cym-store/internal/cart"
	"cym-store/internal/logger"
	"cym-store/internal/order"
	"cym-store/internal/product"
	"cym-store/internal/utils"

	"go.uber.org/zap"
)

var errCheckoutFields = errors.New("name, phone and email are required")

// writeServiceError maps domain sentinels to a status code. Anything unknown
// is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, utils.ErrInvalidBody),
		errors.Is(err, product.ErrEmptyName),
		errors.Is(err, product.ErrEmptyCategory),
		errors.Is(err, product.ErrNegativePrice),
		errors.Is(err, product.ErrNegativeStock),
		errors.Is(err, product.ErrNoFieldsToUpdate),
		errors.Is(err, product.ErrInvalidProductID),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidProductID),
		errors.Is(err, cart.ErrNotCustomizable),
		errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidOrderID),
		errors.Is(err, errCheckoutFields):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, cart.ErrInsufficientStock):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, errNoSession):
		utils.WriteJSONError(w, "session required", http.StatusUnauthorized)

	default:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "http"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
	}
}
