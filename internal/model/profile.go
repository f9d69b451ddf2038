package model

import "github.com/shopspring/decimal"

type UserRole string

const (
	RoleAsker  UserRole = "asker"
	RoleSolver UserRole = "solver"
	RoleBoth   UserRole = "both"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAsker, RoleSolver, RoleBoth:
		return true
	}
	return false
}

// CanSolve reports whether the role may respond to posts.
func (r UserRole) CanSolve() bool {
	return r == RoleSolver || r == RoleBoth
}

type Profile struct {
	ID             string   `json:"id" db:"id"`
	Nickname       string   `json:"nickname" db:"nickname"`
	UserRole       UserRole `json:"userRole" db:"user_role"`
	AvatarURL      *string  `json:"avatarUrl" db:"avatar_url"`
	RealName       *string  `json:"-" db:"real_name"`
	IDCardVerified bool     `json:"idCardVerified" db:"id_card_verified"`
	Phone          *string  `json:"-" db:"phone"`
	WechatID       *string  `json:"-" db:"wechat_id"`
	Email          *string  `json:"-" db:"email"`
	Bio            *string  `json:"bio" db:"bio"`
	Timestamps
}

// PrivateProfile is what the owner sees of their own profile.
type PrivateProfile struct {
	Profile
	RealName *string       `json:"realName"`
	Phone    *string       `json:"phone"`
	WechatID *string       `json:"wechatId"`
	Email    *string       `json:"email"`
	Solver   *SolverProfile `json:"solverProfile,omitempty"`
}

func NewPrivateProfile(p *Profile, solver *SolverProfile) *PrivateProfile {
	return &PrivateProfile{
		Profile:  *p,
		RealName: p.RealName,
		Phone:    p.Phone,
		WechatID: p.WechatID,
		Email:    p.Email,
		Solver:   solver,
	}
}

type SolverProfile struct {
	ID              string           `json:"id" db:"id"`
	UserID          string           `json:"userId" db:"user_id"`
	ExperienceYears int              `json:"experienceYears" db:"experience_years"`
	ExpertiseAreas  []string         `json:"expertiseAreas" db:"expertise_areas"`
	Resume          *string          `json:"resume" db:"resume"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate" db:"hourly_rate"`
	Rating          decimal.Decimal  `json:"rating" db:"rating"`
	TotalSolved     int              `json:"totalSolved" db:"total_solved"`
	IsAvailable     bool             `json:"isAvailable" db:"is_available"`
	Timestamps
}
