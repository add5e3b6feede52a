package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/PRASHANT-tech870/Embroidery/internal/identity"
	"github.com/PRASHANT-tech870/Embroidery/internal/orders"
)

type OrdersHandler struct {
	history *orders.History
}

func NewOrdersHandler(history *orders.History) *OrdersHandler {
	return &OrdersHandler{history: history}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	list, err := h.history.ListOrders(r.Context(), user.ID)
	if err != nil {
		log.Printf("request %s: failed to list orders for user %s: %v", getRequestID(r.Context()), user.ID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load orders")
		return
	}
	if list == nil {
		list = []*orders.Order{}
	}

	respondJSON(w, http.StatusOK, list)
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "order id must be a uuid")
		return
	}

	order, err := h.history.GetOrder(r.Context(), orderID, user.ID)
	if errors.Is(err, orders.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("request %s: failed to load order %s: %v", getRequestID(r.Context()), orderID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
