package service

import (
	"github.com/deppfellow/askhub/internal/lib/job"
	"github.com/deppfellow/askhub/internal/repository"
	"github.com/deppfellow/askhub/internal/server"
)

// Services groups the business services handed to the HTTP handlers.
type Services struct {
	Auth     *AuthService
	Profile  *ProfileService
	Category *CategoryService
	Post     *PostService
	Response *ResponseService
	Message  *MessageService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	return &Services{
		Auth:     authService,
		Profile:  NewProfileService(s.Tx, repos.Profile, repos.Solver, s.Job),
		Category: NewCategoryService(s.Tx, repos.Category, s.Cache),
		Post:     NewPostService(s.Tx, repos.Post),
		Response: NewResponseService(s.Tx, repos.Response, repos.Post, repos.Profile, s.Job),
		Message:  NewMessageService(s.Tx, repos.Message, repos.Profile, s.Cache),
		Job:      s.Job,
	}, nil
}
