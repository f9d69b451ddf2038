package handler

import (
	"github.com/deppfellow/askhub/internal/middleware"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/server"
	"github.com/deppfellow/askhub/internal/service"
	"github.com/deppfellow/askhub/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PostHandler struct {
	Handler
	posts *service.PostService
}

func NewPostHandler(s *server.Server, posts *service.PostService) *PostHandler {
	return &PostHandler{
		Handler: NewHandler(s),
		posts:   posts,
	}
}

type ListPostsRequest struct {
	PageQuery
	Category string `query:"category" validate:"omitempty,max=50"`
	Status   string `query:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Urgency  string `query:"urgency" validate:"omitempty,oneof=low medium high urgent"`
	Author   string `query:"author" validate:"omitempty,max=255"`
}

func (r *ListPostsRequest) Validate() error { return validation.Struct(r) }

func (r *ListPostsRequest) filter() model.PostFilter {
	return model.PostFilter{
		CategorySlug: r.Category,
		Status:       model.PostStatus(r.Status),
		Urgency:      model.Urgency(r.Urgency),
		AuthorID:     r.Author,
		Page:         r.Page,
		Limit:        r.Limit,
	}
}

type CreatePostRequest struct {
	CategoryID   string           `json:"categoryId" validate:"required,uuid"`
	Title        string           `json:"title" validate:"required,min=1,max=200"`
	Description  string           `json:"description" validate:"required,max=20000"`
	AIToolUsed   *string          `json:"aiToolUsed" validate:"omitempty,max=100"`
	ErrorMessage *string          `json:"errorMessage" validate:"omitempty,max=20000"`
	CodeSnippet  *string          `json:"codeSnippet" validate:"omitempty,max=50000"`
	BudgetType   model.BudgetType `json:"budgetType" validate:"omitempty,oneof=fixed hourly negotiable"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount"`
	Urgency      model.Urgency    `json:"urgency" validate:"omitempty,oneof=low medium high urgent"`
}

func (r *CreatePostRequest) Validate() error {
	return validation.Collect(r, validation.Positive("budgetAmount", r.BudgetAmount))
}

type UpdatePostRequest struct {
	ID           string            `param:"id" json:"-" validate:"required,uuid"`
	CategoryID   *string           `json:"categoryId" validate:"omitempty,uuid"`
	Title        *string           `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string           `json:"description" validate:"omitempty,min=1,max=20000"`
	AIToolUsed   *string           `json:"aiToolUsed" validate:"omitempty,max=100"`
	ErrorMessage *string           `json:"errorMessage" validate:"omitempty,max=20000"`
	CodeSnippet  *string           `json:"codeSnippet" validate:"omitempty,max=50000"`
	BudgetType   *model.BudgetType `json:"budgetType" validate:"omitempty,oneof=fixed hourly negotiable"`
	BudgetAmount *decimal.Decimal  `json:"budgetAmount"`
	Urgency      *model.Urgency    `json:"urgency" validate:"omitempty,oneof=low medium high urgent"`
	Status       *model.PostStatus `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
}

func (r *UpdatePostRequest) Validate() error {
	return validation.Collect(r, validation.Positive("budgetAmount", r.BudgetAmount))
}

func (h *PostHandler) List(c echo.Context, req *ListPostsRequest) (model.Paginated[model.Post], error) {
	return h.posts.List(c.Request().Context(), middleware.GetUserID(c), req.filter())
}

func (h *PostHandler) ListMine(c echo.Context, req *ListPostsRequest) (model.Paginated[model.Post], error) {
	return h.posts.ListMine(c.Request().Context(), middleware.GetUserID(c), req.filter())
}

func (h *PostHandler) Get(c echo.Context, req *IDRequest) (*model.Post, error) {
	return h.posts.Get(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

func (h *PostHandler) Create(c echo.Context, req *CreatePostRequest) (*model.Post, error) {
	return h.posts.Create(c.Request().Context(), middleware.GetUserID(c), service.CreatePostInput{
		CategoryID:   req.CategoryID,
		Title:        req.Title,
		Description:  req.Description,
		AIToolUsed:   req.AIToolUsed,
		ErrorMessage: req.ErrorMessage,
		CodeSnippet:  req.CodeSnippet,
		BudgetType:   req.BudgetType,
		BudgetAmount: req.BudgetAmount,
		Urgency:      req.Urgency,
	})
}

func (h *PostHandler) Update(c echo.Context, req *UpdatePostRequest) (*model.Post, error) {
	return h.posts.Update(c.Request().Context(), middleware.GetUserID(c), req.ID, service.UpdatePostInput{
		CategoryID:   req.CategoryID,
		Title:        req.Title,
		Description:  req.Description,
		AIToolUsed:   req.AIToolUsed,
		ErrorMessage: req.ErrorMessage,
		CodeSnippet:  req.CodeSnippet,
		BudgetType:   req.BudgetType,
		BudgetAmount: req.BudgetAmount,
		Urgency:      req.Urgency,
		Status:       req.Status,
	})
}

func (h *PostHandler) Delete(c echo.Context, req *IDRequest) error {
	return h.posts.Delete(c.Request().Context(), middleware.GetUserID(c), req.ID)
}
