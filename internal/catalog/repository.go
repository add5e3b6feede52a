package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrDesignNotFound = errors.New("design not found")

type DesignRepository interface {
	GetDesign(ctx context.Context, id string) (*Design, error)
	ListDesigns(ctx context.Context) ([]*Design, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetDesign(ctx context.Context, id string) (*Design, error) {
	query := `SELECT id, name, pdf_url, image_url, price_range, page_count, created_at
	          FROM designs WHERE id = $1`

	var d Design
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.PDFURL,
		&d.ImageURL,
		&d.PriceRange,
		&d.PageCount,
		&d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDesignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query design by id: %w", err)
	}

	return &d, nil
}

func (r *Repository) ListDesigns(ctx context.Context) ([]*Design, error) {
	query := `SELECT id, name, pdf_url, image_url, price_range, page_count, created_at
	          FROM designs ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query designs: %w", err)
	}
	defer rows.Close()

	var designs []*Design
	for rows.Next() {
		var d Design
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.PDFURL,
			&d.ImageURL,
			&d.PriceRange,
			&d.PageCount,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan design row: %w", err)
		}
		designs = append(designs, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return designs, nil
}
