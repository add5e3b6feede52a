package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReader struct {
	orders []*Order
	err    error
}

func (m *mockReader) ListOrdersForUser(context.Context, string) ([]*Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockReader) GetOrderForUser(_ context.Context, orderID uuid.UUID, _ string) (*Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, o := range m.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, ErrOrderNotFound
}

func TestListOrders_PlaceholderForRemovedDesign(t *testing.T) {
	orderID := uuid.New()
	reader := &mockReader{
		orders: []*Order{{
			Header: Header{ID: orderID, UserID: "user-1", TotalAmount: 2200},
			Lines: []LineDetail{
				{
					Line:        Line{OrderID: orderID, DesignID: "live", Quantity: 2, PriceAtTime: 500},
					DesignName:  "Nature Collection",
					DesignImage: "/images/nature.png",
				},
				{
					// design deleted from the catalog since the order was placed
					Line: Line{OrderID: orderID, DesignID: "gone", Quantity: 1, PriceAtTime: 1200},
				},
			},
		}},
	}

	history := NewHistory(reader)
	list, err := history.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	lines := list[0].Lines
	require.Len(t, lines, 2)

	// the live snapshot passes through untouched
	assert.Equal(t, "Nature Collection", lines[0].DesignName)
	assert.Equal(t, "/images/nature.png", lines[0].DesignImage)

	// the missing one degrades to placeholders, the read does not fail
	assert.Equal(t, PlaceholderName, lines[1].DesignName)
	assert.Equal(t, PlaceholderImage, lines[1].DesignImage)
	assert.Equal(t, int64(1200), lines[1].PriceAtTime)
}

func TestListOrders_PassesOrderingThrough(t *testing.T) {
	newer := &Order{Header: Header{ID: uuid.New(), CreatedAt: time.Now()}}
	older := &Order{Header: Header{ID: uuid.New(), CreatedAt: time.Now().Add(-time.Hour)}}
	reader := &mockReader{orders: []*Order{newer, older}}

	history := NewHistory(reader)
	list, err := history.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestListOrders_ReaderError(t *testing.T) {
	reader := &mockReader{err: errors.New("connection reset")}

	history := NewHistory(reader)
	list, err := history.ListOrders(context.Background(), "user-1")
	assert.Error(t, err)
	assert.Nil(t, list)
}

func TestListOrders_Empty(t *testing.T) {
	history := NewHistory(&mockReader{})

	list, err := history.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetOrder_PlaceholderForRemovedDesign(t *testing.T) {
	orderID := uuid.New()
	reader := &mockReader{
		orders: []*Order{{
			Header: Header{ID: orderID, UserID: "user-1"},
			Lines: []LineDetail{
				{Line: Line{OrderID: orderID, DesignID: "gone", Quantity: 1, PriceAtTime: 900}},
			},
		}},
	}

	history := NewHistory(reader)
	order, err := history.GetOrder(context.Background(), orderID, "user-1")
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, PlaceholderName, order.Lines[0].DesignName)
	assert.Equal(t, PlaceholderImage, order.Lines[0].DesignImage)
}

func TestGetOrder_NotFound(t *testing.T) {
	history := NewHistory(&mockReader{})

	order, err := history.GetOrder(context.Background(), uuid.New(), "user-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, order)
}
