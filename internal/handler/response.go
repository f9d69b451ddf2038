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

type ResponseHandler struct {
	Handler
	responses *service.ResponseService
}

func NewResponseHandler(s *server.Server, responses *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		Handler:   NewHandler(s),
		responses: responses,
	}
}

type CreateResponseRequest struct {
	PostID           string           `param:"id" json:"-" validate:"required,uuid"`
	Content          string           `json:"content" validate:"required,max=10000"`
	ProposedSolution *string          `json:"proposedSolution" validate:"omitempty,max=20000"`
	EstimatedTime    *string          `json:"estimatedTime" validate:"omitempty,max=100"`
	ProposedPrice    *decimal.Decimal `json:"proposedPrice"`
}

func (r *CreateResponseRequest) Validate() error {
	return validation.Collect(r, validation.NonNegative("proposedPrice", r.ProposedPrice))
}

type UpdateResponseRequest struct {
	ID               string           `param:"id" json:"-" validate:"required,uuid"`
	Content          *string          `json:"content" validate:"omitempty,min=1,max=10000"`
	ProposedSolution *string          `json:"proposedSolution" validate:"omitempty,max=20000"`
	EstimatedTime    *string          `json:"estimatedTime" validate:"omitempty,max=100"`
	ProposedPrice    *decimal.Decimal `json:"proposedPrice"`
}

func (r *UpdateResponseRequest) Validate() error {
	return validation.Collect(r, validation.NonNegative("proposedPrice", r.ProposedPrice))
}

func (h *ResponseHandler) ListByPost(c echo.Context, req *IDRequest) ([]model.Response, error) {
	return h.responses.ListByPost(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

func (h *ResponseHandler) ListMine(c echo.Context, _ *EmptyRequest) ([]model.Response, error) {
	return h.responses.ListMine(c.Request().Context(), middleware.GetUserID(c))
}

func (h *ResponseHandler) Create(c echo.Context, req *CreateResponseRequest) (*model.Response, error) {
	return h.responses.Create(c.Request().Context(), middleware.GetUserID(c), req.PostID, service.CreateResponseInput{
		Content:          req.Content,
		ProposedSolution: req.ProposedSolution,
		EstimatedTime:    req.EstimatedTime,
		ProposedPrice:    req.ProposedPrice,
	})
}

func (h *ResponseHandler) Update(c echo.Context, req *UpdateResponseRequest) (*model.Response, error) {
	return h.responses.Update(c.Request().Context(), middleware.GetUserID(c), req.ID, service.UpdateResponseInput{
		Content:          req.Content,
		ProposedSolution: req.ProposedSolution,
		EstimatedTime:    req.EstimatedTime,
		ProposedPrice:    req.ProposedPrice,
	})
}

func (h *ResponseHandler) Accept(c echo.Context, req *IDRequest) (*model.Response, error) {
	return h.responses.Accept(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

func (h *ResponseHandler) Reject(c echo.Context, req *IDRequest) (*model.Response, error) {
	return h.responses.Reject(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

func (h *ResponseHandler) Complete(c echo.Context, req *IDRequest) (*model.Response, error) {
	return h.responses.Complete(c.Request().Context(), middleware.GetUserID(c), req.ID)
}
