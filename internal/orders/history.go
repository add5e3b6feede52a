package orders

import (
	"context"

	"github.com/google/uuid"
)

const (
	// PlaceholderName stands in for a design that was removed from the catalog.
	PlaceholderName  = "Design no longer available"
	PlaceholderImage = "/images/design-placeholder.png"
)

type Reader interface {
	ListOrdersForUser(ctx context.Context, userID string) ([]*Order, error)
	GetOrderForUser(ctx context.Context, orderID uuid.UUID, userID string) (*Order, error)
}

// History is the read path for order listings. A missing catalog snapshot
// degrades to placeholder name/image rather than failing the whole read.
type History struct {
	reader Reader
}

func NewHistory(reader Reader) *History {
	return &History{reader: reader}
}

func (h *History) ListOrders(ctx context.Context, userID string) ([]*Order, error) {
	orders, err := h.reader.ListOrdersForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		fillPlaceholders(order)
	}
	return orders, nil
}

func (h *History) GetOrder(ctx context.Context, orderID uuid.UUID, userID string) (*Order, error) {
	order, err := h.reader.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	fillPlaceholders(order)
	return order, nil
}

func fillPlaceholders(order *Order) {
	for i := range order.Lines {
		if order.Lines[i].DesignName == "" {
			order.Lines[i].DesignName = PlaceholderName
		}
		if order.Lines[i].DesignImage == "" {
			order.Lines[i].DesignImage = PlaceholderImage
		}
	}
}
