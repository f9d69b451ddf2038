package handler

import (
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/server"
	"github.com/deppfellow/askhub/internal/service"
	"github.com/deppfellow/askhub/internal/validation"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	categories *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:    NewHandler(s),
		categories: categories,
	}
}

type CategorySlugRequest struct {
	Slug string `param:"slug" validate:"required,max=50"`
}

func (r *CategorySlugRequest) Validate() error { return validation.Struct(r) }

func (h *CategoryHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Category, error) {
	return h.categories.List(c.Request().Context())
}

func (h *CategoryHandler) Get(c echo.Context, req *CategorySlugRequest) (*model.Category, error) {
	return h.categories.GetBySlug(c.Request().Context(), req.Slug)
}
