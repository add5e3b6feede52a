package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PRASHANT-tech870/Embroidery/internal/catalog"
	"github.com/PRASHANT-tech870/Embroidery/internal/pricing"
)

type CatalogHandler struct {
	designs *catalog.Service
}

func NewCatalogHandler(designs *catalog.Service) *CatalogHandler {
	return &CatalogHandler{designs: designs}
}

func (h *CatalogHandler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := h.designs.ListDesigns(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load designs")
		return
	}

	respondJSON(w, http.StatusOK, designs)
}

func (h *CatalogHandler) GetDesign(w http.ResponseWriter, r *http.Request) {
	design, err := h.designs.GetDesign(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrDesignNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "design not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load design")
		return
	}

	respondJSON(w, http.StatusOK, design)
}

// Quote prices one page of a design before it goes into the cart.
// GET /api/v1/designs/{id}/quote?page=N
func (h *CatalogHandler) Quote(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_page", "page must be a number")
		return
	}

	design, err := h.designs.GetDesign(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrDesignNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "design not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load design")
		return
	}

	quote, err := pricing.Resolve(design, page)
	if errors.Is(err, pricing.ErrNoQuote) {
		respondError(w, http.StatusUnprocessableEntity, "no_quote", "selected page is outside the design's range")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to price design")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}
