package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type SolverProfileRepository struct{}

func NewSolverProfileRepository() *SolverProfileRepository {
	return &SolverProfileRepository{}
}

func (r *SolverProfileRepository) GetByUserID(ctx context.Context, q database.Querier, userID string) (*model.SolverProfile, error) {
	rows, err := q.Query(ctx, `SELECT * FROM solver_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query solver profile user_id=%s: %w", userID, err)
	}

	solver, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.SolverProfile])
	if err != nil {
		return nil, fmt.Errorf("failed to get solver profile user_id=%s: %w", userID, sqlerr.NotFound("solver_profiles", err))
	}
	return solver, nil
}

type UpsertSolverProfileParams struct {
	ExperienceYears int
	ExpertiseAreas  []string
	Resume          *string
	HourlyRate      *decimal.Decimal
	IsAvailable     bool
}

// Upsert creates the caller's solver profile or replaces its editable
// fields. Rating and total_solved are never touched.
func (r *SolverProfileRepository) Upsert(ctx context.Context, q database.Querier, userID string, p UpsertSolverProfileParams) (*model.SolverProfile, error) {
	areas := p.ExpertiseAreas
	if areas == nil {
		areas = []string{}
	}

	stmt := `
		INSERT INTO solver_profiles (user_id, experience_years, expertise_areas, resume, hourly_rate, is_available)
		VALUES (@user_id, @experience_years, @expertise_areas, @resume, @hourly_rate, @is_available)
		ON CONFLICT (user_id) DO UPDATE SET
			experience_years = EXCLUDED.experience_years,
			expertise_areas  = EXCLUDED.expertise_areas,
			resume           = EXCLUDED.resume,
			hourly_rate      = EXCLUDED.hourly_rate,
			is_available     = EXCLUDED.is_available
		RETURNING *
	`
	rows, err := q.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":          userID,
		"experience_years": p.ExperienceYears,
		"expertise_areas":  areas,
		"resume":           p.Resume,
		"hourly_rate":      p.HourlyRate,
		"is_available":     p.IsAvailable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert solver profile user_id=%s: %w", userID, err)
	}

	solver, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.SolverProfile])
	if err != nil {
		return nil, fmt.Errorf("failed to collect solver profile user_id=%s: %w", userID, err)
	}
	return solver, nil
}
