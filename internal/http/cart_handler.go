package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/PRASHANT-tech870/Embroidery/internal/cart"
	"github.com/PRASHANT-tech870/Embroidery/internal/catalog"
	"github.com/PRASHANT-tech870/Embroidery/internal/pricing"
)

type CartHandler struct {
	sessions *cart.Sessions
	designs  *catalog.Service
	validate *validator.Validate
}

func NewCartHandler(sessions *cart.Sessions, designs *catalog.Service) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		designs:  designs,
		validate: validator.New(),
	}
}

type AddItemRequestDTO struct {
	DesignID string `json:"design_id" validate:"required"`
	Page     int    `json:"page" validate:"min=1"`
	Quantity int    `json:"quantity" validate:"min=1,max=99"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity" validate:"min=1,max=99"`
}

type CartResponseDTO struct {
	Lines []cart.Line `json:"lines"`
	Total int64       `json:"total"`
}

func (h *CartHandler) cartResponse(store *cart.Store) CartResponseDTO {
	lines := store.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResponseDTO{Lines: lines, Total: store.Total()}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.sessions.Get(getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

// AddItem resolves the price for the selected page and freezes it into the
// cart line. Adding the same (design, page) again merges quantities.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	design, err := h.designs.GetDesign(r.Context(), req.DesignID)
	if errors.Is(err, catalog.ErrDesignNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "design not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load design")
		return
	}

	quote, err := pricing.Resolve(design, req.Page)
	if errors.Is(err, pricing.ErrNoQuote) {
		respondError(w, http.StatusUnprocessableEntity, "no_quote", "selected page is outside the design's range")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to price design")
		return
	}

	store := h.sessions.Get(getSessionID(r.Context()))
	store.Add(cart.Line{
		DesignID:  design.ID,
		Page:      req.Page,
		Name:      quote.Label,
		UnitPrice: quote.UnitPrice,
		Quantity:  req.Quantity,
		ImageURL:  design.ImageURL,
	})

	respondJSON(w, http.StatusCreated, h.cartResponse(store))
}

// UpdateQuantity sets a line's quantity. The floor of 1 lives here at the
// presentation boundary; decrementing the last unit must go through RemoveItem.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKeyFromURL(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	store := h.sessions.Get(getSessionID(r.Context()))
	store.UpdateQuantity(key, req.Quantity)

	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKeyFromURL(w, r)
	if !ok {
		return
	}

	store := h.sessions.Get(getSessionID(r.Context()))
	store.Remove(key)

	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.sessions.Get(getSessionID(r.Context()))
	store.Clear()

	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func lineKeyFromURL(w http.ResponseWriter, r *http.Request) (cart.LineKey, bool) {
	designID := chi.URLParam(r, "design_id")
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if designID == "" || err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "design_id and page are required")
		return cart.LineKey{}, false
	}
	return cart.LineKey{DesignID: designID, Page: page}, true
}
