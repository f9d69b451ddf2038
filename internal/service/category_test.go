package service

import (
	"context"
	"testing"

	"github.com/deppfellow/askhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryListIsCached(t *testing.T) {
	tx := &fakeTx{}
	store := &mockCategories{}
	cache := newMemCache()
	svc := NewCategoryService(tx, store, cache)

	store.On("ListActive", mock.Anything, mock.Anything).Return([]model.Category{{Slug: "web"}, {Slug: "other"}}, nil).Once()

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, tx.users, 1)
	store.AssertExpectations(t)
}

func TestCategoryGetBySlugIsAnonymous(t *testing.T) {
	tx := &fakeTx{}
	store := &mockCategories{}
	svc := NewCategoryService(tx, store, newMemCache())

	store.On("GetBySlug", mock.Anything, mock.Anything, "ai-ml").Return(&model.Category{Slug: "ai-ml"}, nil)

	out, err := svc.GetBySlug(context.Background(), "ai-ml")

	require.NoError(t, err)
	assert.Equal(t, "ai-ml", out.Slug)
	assert.Equal(t, []string{""}, tx.users)
}
