package handler

import (
	"github.com/deppfellow/askhub/internal/server"
	"github.com/deppfellow/askhub/internal/service"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Profile  *ProfileHandler
	Category *CategoryHandler
	Post     *PostHandler
	Response *ResponseHandler
	Message  *MessageHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Profile:  NewProfileHandler(s, services.Profile),
		Category: NewCategoryHandler(s, services.Category),
		Post:     NewPostHandler(s, services.Post),
		Response: NewResponseHandler(s, services.Response),
		Message:  NewMessageHandler(s, services.Message),
	}
}
