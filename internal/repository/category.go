package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// ListActive returns enabled categories in display order.
func (r *CategoryRepository) ListActive(ctx context.Context, q database.Querier) ([]model.Category, error) {
	rows, err := q.Query(ctx, `
		SELECT * FROM categories
		WHERE is_active
		ORDER BY display_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, q database.Querier, slug string) (*model.Category, error) {
	rows, err := q.Query(ctx, `SELECT * FROM categories WHERE slug = $1 AND is_active`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query category slug=%s: %w", slug, err)
	}

	category, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to get category slug=%s: %w", slug, sqlerr.NotFound("categories", err))
	}
	return category, nil
}
