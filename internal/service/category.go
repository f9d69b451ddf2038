package service

import (
	"context"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
)

type CategoryService struct {
	tx         database.Transactor
	categories CategoryStore
	cache      Cache
}

func NewCategoryService(tx database.Transactor, categories CategoryStore, cache Cache) *CategoryService {
	return &CategoryService{tx: tx, categories: categories, cache: cache}
}

// List returns the active categories, from Redis when cached.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	if cached, ok := s.cache.Categories(ctx); ok {
		return cached, nil
	}

	var out []model.Category
	err := s.tx.AsUser(ctx, "", func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.categories.ListActive(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.SetCategories(ctx, out)
	return out, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var out *model.Category
	err := s.tx.AsUser(ctx, "", func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.categories.GetBySlug(ctx, q, slug)
		return err
	})
	return out, err
}
