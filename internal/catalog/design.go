package catalog

import "time"

// Design is one embroidery design booklet. Individual pages inside the booklet
// are what customers actually buy; PriceRange bounds the per-page price.
type Design struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PDFURL     string    `json:"pdf_url"`
	ImageURL   string    `json:"image_url"`
	PriceRange string    `json:"price_range"` // "500-2000", whole rupees
	PageCount  int       `json:"page_count"`
	CreatedAt  time.Time `json:"created_at"`
}
