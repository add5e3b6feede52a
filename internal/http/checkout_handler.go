package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/PRASHANT-tech870/Embroidery/internal/cart"
	"github.com/PRASHANT-tech870/Embroidery/internal/checkout"
)

type CheckoutHandler struct {
	sessions     *cart.Sessions
	orchestrator *checkout.Orchestrator
	validate     *validator.Validate
}

func NewCheckoutHandler(sessions *cart.Sessions, orchestrator *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:     sessions,
		orchestrator: orchestrator,
		validate:     validator.New(),
	}
}

type SubmitCheckoutRequestDTO struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

type CheckoutResponseDTO struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "missing_shipping_address", "shipping_address is required")
		return
	}

	sessionID := getSessionID(r.Context())
	store := h.sessions.Get(sessionID)

	orderID, err := h.orchestrator.Submit(r.Context(), sessionID, store, req.ShippingAddress)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: orderID.String(),
		Status:  checkout.StatusSucceeded.String(),
	})
}

// GET /api/v1/checkout/status
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.orchestrator.Status(getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, map[string]string{"status": status.String()})
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	var partial *checkout.PartialWriteError
	switch {
	case errors.Is(err, checkout.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthenticated", "you must be logged in to place an order")
	case errors.Is(err, checkout.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		respondError(w, http.StatusConflict, "checkout_in_progress", err.Error())
	case errors.Is(err, checkout.ErrPaymentUnavailable):
		respondError(w, http.StatusServiceUnavailable, "payment_unavailable", "payment provider is unavailable, please retry")
	case errors.Is(err, checkout.ErrPaymentDeclined):
		respondError(w, http.StatusPaymentRequired, "payment_declined", err.Error())
	case errors.As(err, &partial):
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "order was created but its items were not saved, contact support",
			Code:    "partial_order_write",
			Details: partial.OrderID.String(),
		})
	default:
		respondError(w, http.StatusInternalServerError, "persistence_failed", "order could not be saved, please retry")
	}
}
