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

type ProfileHandler struct {
	Handler
	profiles *service.ProfileService
}

func NewProfileHandler(s *server.Server, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		Handler:  NewHandler(s),
		profiles: profiles,
	}
}

type CreateProfileRequest struct {
	Nickname  string         `json:"nickname" validate:"required,min=1,max=50"`
	UserRole  model.UserRole `json:"userRole" validate:"omitempty,oneof=asker solver both"`
	AvatarURL *string        `json:"avatarUrl" validate:"omitempty,url"`
	Email     *string        `json:"email" validate:"omitempty,email"`
	Bio       *string        `json:"bio" validate:"omitempty,max=1000"`
}

func (r *CreateProfileRequest) Validate() error { return validation.Struct(r) }

type UpdateProfileRequest struct {
	Nickname  *string         `json:"nickname" validate:"omitempty,min=1,max=50"`
	UserRole  *model.UserRole `json:"userRole" validate:"omitempty,oneof=asker solver both"`
	AvatarURL *string         `json:"avatarUrl" validate:"omitempty,url"`
	RealName  *string         `json:"realName" validate:"omitempty,max=50"`
	Phone     *string         `json:"phone" validate:"omitempty,max=20"`
	WechatID  *string         `json:"wechatId" validate:"omitempty,max=50"`
	Email     *string         `json:"email" validate:"omitempty,email"`
	Bio       *string         `json:"bio" validate:"omitempty,max=1000"`
}

func (r *UpdateProfileRequest) Validate() error { return validation.Struct(r) }

type ProfileIDRequest struct {
	ID string `param:"id" validate:"required,max=255"`
}

func (r *ProfileIDRequest) Validate() error { return validation.Struct(r) }

type UpsertSolverRequest struct {
	ExperienceYears int              `json:"experienceYears" validate:"min=0,max=80"`
	ExpertiseAreas  StringList       `json:"expertiseAreas" validate:"max=20,dive,max=50"`
	Resume          *string          `json:"resume" validate:"omitempty,max=5000"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate"`
	IsAvailable     *bool            `json:"isAvailable"`
}

func (r *UpsertSolverRequest) Validate() error {
	return validation.Collect(r, validation.NonNegative("hourlyRate", r.HourlyRate))
}

func (h *ProfileHandler) Me(c echo.Context, _ *EmptyRequest) (*model.PrivateProfile, error) {
	return h.profiles.Me(c.Request().Context(), middleware.GetUserID(c))
}

func (h *ProfileHandler) Create(c echo.Context, req *CreateProfileRequest) (*model.PrivateProfile, error) {
	return h.profiles.Create(c.Request().Context(), middleware.GetUserID(c), service.CreateProfileInput{
		Nickname:  req.Nickname,
		Role:      req.UserRole,
		AvatarURL: req.AvatarURL,
		Email:     req.Email,
		Bio:       req.Bio,
	})
}

func (h *ProfileHandler) Update(c echo.Context, req *UpdateProfileRequest) (*model.PrivateProfile, error) {
	return h.profiles.Update(c.Request().Context(), middleware.GetUserID(c), service.UpdateProfileInput{
		Nickname:  req.Nickname,
		Role:      req.UserRole,
		AvatarURL: req.AvatarURL,
		RealName:  req.RealName,
		Phone:     req.Phone,
		WechatID:  req.WechatID,
		Email:     req.Email,
		Bio:       req.Bio,
	})
}

func (h *ProfileHandler) Get(c echo.Context, req *ProfileIDRequest) (*model.Profile, error) {
	return h.profiles.Get(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

func (h *ProfileHandler) GetSolver(c echo.Context, req *ProfileIDRequest) (*model.SolverProfile, error) {
	return h.profiles.GetSolver(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

func (h *ProfileHandler) UpsertSolver(c echo.Context, req *UpsertSolverRequest) (*model.SolverProfile, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return h.profiles.UpsertSolver(c.Request().Context(), middleware.GetUserID(c), service.SolverProfileInput{
		ExperienceYears: req.ExperienceYears,
		ExpertiseAreas:  req.ExpertiseAreas,
		Resume:          req.Resume,
		HourlyRate:      req.HourlyRate,
		IsAvailable:     available,
	})
}
