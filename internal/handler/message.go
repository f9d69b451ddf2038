package handler

import (
	"github.com/deppfellow/askhub/internal/middleware"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/server"
	"github.com/deppfellow/askhub/internal/service"
	"github.com/deppfellow/askhub/internal/validation"
	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	Handler
	messages *service.MessageService
}

func NewMessageHandler(s *server.Server, messages *service.MessageService) *MessageHandler {
	return &MessageHandler{
		Handler:  NewHandler(s),
		messages: messages,
	}
}

type ListMessagesRequest struct {
	PageQuery
	Unread bool `query:"unread"`
}

func (r *ListMessagesRequest) Validate() error { return validation.Struct(r) }

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func (h *MessageHandler) List(c echo.Context, req *ListMessagesRequest) (model.Paginated[model.Message], error) {
	return h.messages.List(c.Request().Context(), middleware.GetUserID(c), req.Unread, req.Page, req.Limit)
}

func (h *MessageHandler) UnreadCount(c echo.Context, _ *EmptyRequest) (UnreadCountResponse, error) {
	n, err := h.messages.UnreadCount(c.Request().Context(), middleware.GetUserID(c))
	return UnreadCountResponse{Count: n}, err
}

func (h *MessageHandler) MarkRead(c echo.Context, req *IDRequest) (*model.Message, error) {
	return h.messages.MarkRead(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

func (h *MessageHandler) MarkAllRead(c echo.Context, _ *EmptyRequest) (MarkAllReadResponse, error) {
	n, err := h.messages.MarkAllRead(c.Request().Context(), middleware.GetUserID(c))
	return MarkAllReadResponse{Updated: n}, err
}
