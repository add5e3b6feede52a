package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrOrderNotFound = errors.New("order not found")

// LineDetail is an order line joined with its catalog snapshot. DesignName and
// DesignImage are empty when the referenced design has since been removed.
type LineDetail struct {
	Line
	DesignName  string `json:"design_name"`
	DesignImage string `json:"design_image"`
}

// Order is a header with its lines, as read back for history views.
type Order struct {
	Header
	Lines []LineDetail `json:"lines"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertOrderHeader writes the order row and returns its id. The header must
// be fully acknowledged before any lines are written.
func (r *Repository) InsertOrderHeader(ctx context.Context, header *Header) (uuid.UUID, error) {
	if header.ID == uuid.Nil {
		header.ID = uuid.New()
	}

	query := `INSERT INTO orders (id, user_id, total_amount, shipping_address, status, payment_status, payment_ref, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

	_, err := r.db.ExecContext(ctx, query,
		header.ID,
		header.UserID,
		header.TotalAmount,
		header.ShippingAddress,
		header.Status,
		header.PaymentStatus,
		header.PaymentRef)

	if err != nil {
		return uuid.Nil, fmt.Errorf("insert order: %w", err)
	}
	return header.ID, nil
}

// InsertOrderLines writes the line batch in one statement. This is a separate
// call from InsertOrderHeader on purpose: the two writes are not transactional
// and the caller owns the partial-write failure mode.
func (r *Repository) InsertOrderLines(ctx context.Context, lines []Line) error {
	if len(lines) == 0 {
		return errors.New("no order lines to insert")
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO order_items (id, order_id, design_id, page, quantity, price_at_time) VALUES `)
	args := make([]interface{}, 0, len(lines)*6)
	for i, line := range lines {
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, line.ID, line.OrderID, line.DesignID, line.Page, line.Quantity, line.PriceAtTime)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert order lines: %w", err)
	}
	return nil
}

// GetOrderForUser returns one of the user's orders with its lines. Asking for
// another user's order reports ErrOrderNotFound rather than leaking existence.
func (r *Repository) GetOrderForUser(ctx context.Context, orderID uuid.UUID, userID string) (*Order, error) {
	query := `SELECT id, user_id, total_amount, shipping_address, status, payment_status, payment_ref, created_at, updated_at
	          FROM orders WHERE id = $1 AND user_id = $2`

	var o Order
	err := r.db.QueryRowContext(ctx, query, orderID, userID).Scan(
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&o.ShippingAddress,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentRef,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	byID := map[uuid.UUID]*Order{o.ID: &o}
	if err := r.attachLines(ctx, []uuid.UUID{o.ID}, byID); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrdersForUser returns the user's orders most-recent-first, each with its
// lines and whatever catalog snapshot still exists for them.
func (r *Repository) ListOrdersForUser(ctx context.Context, userID string) ([]*Order, error) {
	query := `SELECT id, user_id, total_amount, shipping_address, status, payment_status, payment_ref, created_at, updated_at
	          FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user id: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	byID := make(map[uuid.UUID]*Order)
	var ids []uuid.UUID
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.TotalAmount,
			&o.ShippingAddress,
			&o.Status,
			&o.PaymentStatus,
			&o.PaymentRef,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &o)
		byID[o.ID] = &o
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	if err := r.attachLines(ctx, ids, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) attachLines(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*Order) error {
	query := `SELECT i.id, i.order_id, i.design_id, i.page, i.quantity, i.price_at_time, d.name, d.image_url
	          FROM order_items i
	          LEFT JOIN designs d ON d.id = i.design_id
	          WHERE i.order_id = ANY($1)
	          ORDER BY i.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line LineDetail
		var name, image sql.NullString
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.DesignID,
			&line.Page,
			&line.Quantity,
			&line.PriceAtTime,
			&name,
			&image,
		); err != nil {
			return fmt.Errorf("scan order item row: %w", err)
		}
		line.DesignName = name.String
		line.DesignImage = image.String

		if order, ok := byID[line.OrderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}
