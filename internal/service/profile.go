package service

import (
	"context"
	"errors"
	"strings"

	"github.com/deppfellow/askhub/internal/authz"
	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/lib/utils"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProfileSetupPath is where clients send users who have signed in but
// not yet created a profile.
const ProfileSetupPath = "/profile/setup"

type ProfileService struct {
	tx       database.Transactor
	profiles ProfileStore
	solvers  SolverProfileStore
	notifier Notifier
}

func NewProfileService(tx database.Transactor, profiles ProfileStore, solvers SolverProfileStore, notifier Notifier) *ProfileService {
	return &ProfileService{tx: tx, profiles: profiles, solvers: solvers, notifier: notifier}
}

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func errProfileMissing() error {
	return errs.NewNotFoundError("Create your profile first", true, errs.Code("PROFILE_REQUIRED")).
		WithAction(&errs.Action{Type: errs.ActionTypeRedirect, Message: "Set up your profile", Value: ProfileSetupPath})
}

// Me returns the caller's own profile including private contact fields
// and, for solvers, the solver profile.
func (s *ProfileService) Me(ctx context.Context, userID string) (*model.PrivateProfile, error) {
	var out *model.PrivateProfile
	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		profile, err := s.profiles.GetByID(ctx, q, userID)
		if err != nil {
			if isNotFound(err) {
				return errProfileMissing()
			}
			return err
		}

		solver, err := s.optionalSolver(ctx, q, profile)
		if err != nil {
			return err
		}
		out = model.NewPrivateProfile(profile, solver)
		return nil
	})
	return out, err
}

func (s *ProfileService) optionalSolver(ctx context.Context, q database.Querier, profile *model.Profile) (*model.SolverProfile, error) {
	if !profile.UserRole.CanSolve() {
		return nil, nil
	}
	solver, err := s.solvers.GetByUserID(ctx, q, profile.ID)
	if isNotFound(err) {
		return nil, nil
	}
	return solver, err
}

type CreateProfileInput struct {
	Nickname  string
	Role      model.UserRole
	AvatarURL *string
	Email     *string
	Bio       *string
}

// Create registers the caller's profile. Solvers also get an empty
// solver profile they can fill in later.
func (s *ProfileService) Create(ctx context.Context, userID string, in CreateProfileInput) (*model.PrivateProfile, error) {
	if err := authz.Check(authz.Profiles, authz.Insert, userID, userID); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleAsker
	}

	var out *model.PrivateProfile
	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		profile, err := s.profiles.Create(ctx, q, repository.CreateProfileParams{
			ID:        userID,
			Nickname:  strings.TrimSpace(in.Nickname),
			UserRole:  in.Role,
			AvatarURL: utils.TrimmedOrNil(in.AvatarURL),
			Email:     utils.TrimmedOrNil(in.Email),
			Bio:       utils.TrimmedOrNil(in.Bio),
		})
		if err != nil {
			return err
		}

		var solver *model.SolverProfile
		if profile.UserRole.CanSolve() {
			solver, err = s.solvers.Upsert(ctx, q, userID, repository.UpsertSolverProfileParams{IsAvailable: true})
			if err != nil {
				return err
			}
		}
		out = model.NewPrivateProfile(profile, solver)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Email != nil {
		if err := s.notifier.EnqueueWelcomeEmail(ctx, *out.Email, out.Nickname, out.UserRole); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("failed to enqueue welcome email")
		}
	}
	return out, nil
}

type UpdateProfileInput struct {
	Nickname  *string
	Role      *model.UserRole
	AvatarURL *string
	RealName  *string
	Phone     *string
	WechatID  *string
	Email     *string
	Bio       *string
}

// Update changes the caller's own profile. Switching to a solving role
// creates the solver profile if it does not exist yet.
func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*model.PrivateProfile, error) {
	if err := authz.Check(authz.Profiles, authz.Update, userID, userID); err != nil {
		return nil, err
	}

	var out *model.PrivateProfile
	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		profile, err := s.profiles.Update(ctx, q, userID, repository.UpdateProfileParams{
			Nickname:  in.Nickname,
			UserRole:  in.Role,
			AvatarURL: in.AvatarURL,
			RealName:  in.RealName,
			Phone:     in.Phone,
			WechatID:  in.WechatID,
			Email:     in.Email,
			Bio:       in.Bio,
		})
		if err != nil {
			if isNotFound(err) {
				return errProfileMissing()
			}
			return err
		}

		solver, err := s.optionalSolver(ctx, q, profile)
		if err != nil {
			return err
		}
		if solver == nil && profile.UserRole.CanSolve() {
			solver, err = s.solvers.Upsert(ctx, q, userID, repository.UpsertSolverProfileParams{IsAvailable: true})
			if err != nil {
				return err
			}
		}
		out = model.NewPrivateProfile(profile, solver)
		return nil
	})
	return out, err
}

// Get returns a public profile view.
func (s *ProfileService) Get(ctx context.Context, callerID, id string) (*model.Profile, error) {
	var out *model.Profile
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.profiles.GetByID(ctx, q, id)
		return err
	})
	return out, err
}

func (s *ProfileService) GetSolver(ctx context.Context, callerID, userID string) (*model.SolverProfile, error) {
	var out *model.SolverProfile
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.solvers.GetByUserID(ctx, q, userID)
		return err
	})
	return out, err
}

type SolverProfileInput struct {
	ExperienceYears int
	ExpertiseAreas  []string
	Resume          *string
	HourlyRate      *decimal.Decimal
	IsAvailable     bool
}

// UpsertSolver writes the caller's solver profile. Only profiles with a
// solving role have one.
func (s *ProfileService) UpsertSolver(ctx context.Context, userID string, in SolverProfileInput) (*model.SolverProfile, error) {
	if err := authz.Check(authz.SolverProfiles, authz.Update, userID, userID); err != nil {
		return nil, err
	}

	var out *model.SolverProfile
	err := s.tx.AsUser(ctx, userID, func(ctx context.Context, q database.Querier) error {
		profile, err := s.profiles.GetByID(ctx, q, userID)
		if err != nil {
			if isNotFound(err) {
				return errProfileMissing()
			}
			return err
		}
		if !profile.UserRole.CanSolve() {
			return errs.NewForbiddenError("Switch your role to solver or both before editing a solver profile", true)
		}

		out, err = s.solvers.Upsert(ctx, q, userID, repository.UpsertSolverProfileParams{
			ExperienceYears: in.ExperienceYears,
			ExpertiseAreas:  in.ExpertiseAreas,
			Resume:          utils.TrimmedOrNil(in.Resume),
			HourlyRate:      in.HourlyRate,
			IsAvailable:     in.IsAvailable,
		})
		return err
	})
	return out, err
}

// Purge deletes a profile and everything that cascades from it. There
// is no user-facing delete; this is an operator action.
func (s *ProfileService) Purge(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.tx.AsSystem(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		deleted, err = s.profiles.Delete(ctx, q, id)
		return err
	})
	return deleted, err
}
