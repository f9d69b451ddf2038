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

type ResponseRepository struct{}

func NewResponseRepository() *ResponseRepository {
	return &ResponseRepository{}
}

type CreateResponseParams struct {
	PostID           string
	SolverID         string
	Content          string
	ProposedSolution *string
	EstimatedTime    *string
	ProposedPrice    *decimal.Decimal
}

func (r *ResponseRepository) Create(ctx context.Context, q database.Querier, p CreateResponseParams) (*model.Response, error) {
	stmt := `
		INSERT INTO responses (post_id, solver_id, content, proposed_solution, estimated_time, proposed_price)
		VALUES (@post_id, @solver_id, @content, @proposed_solution, @estimated_time, @proposed_price)
		RETURNING *
	`
	rows, err := q.Query(ctx, stmt, pgx.NamedArgs{
		"post_id":           p.PostID,
		"solver_id":         p.SolverID,
		"content":           p.Content,
		"proposed_solution": p.ProposedSolution,
		"estimated_time":    p.EstimatedTime,
		"proposed_price":    p.ProposedPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create response post_id=%s solver_id=%s: %w", p.PostID, p.SolverID, err)
	}

	response, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Response])
	if err != nil {
		return nil, fmt.Errorf("failed to collect response post_id=%s solver_id=%s: %w", p.PostID, p.SolverID, err)
	}
	return response, nil
}

func (r *ResponseRepository) GetByID(ctx context.Context, q database.Querier, id string) (*model.Response, error) {
	rows, err := q.Query(ctx, `SELECT * FROM responses WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query response id=%s: %w", id, err)
	}

	response, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Response])
	if err != nil {
		return nil, fmt.Errorf("failed to get response id=%s: %w", id, sqlerr.NotFound("responses", err))
	}
	return response, nil
}

// ExistsForSolver reports whether solverID already responded to postID.
func (r *ResponseRepository) ExistsForSolver(ctx context.Context, q database.Querier, postID, solverID string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM responses WHERE post_id = $1 AND solver_id = $2)`,
		postID, solverID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check response post_id=%s solver_id=%s: %w", postID, solverID, err)
	}
	return exists, nil
}

func (r *ResponseRepository) ListByPost(ctx context.Context, q database.Querier, postID string) ([]model.Response, error) {
	return r.list(ctx, q, `SELECT * FROM responses WHERE post_id = $1 ORDER BY created_at DESC, id`, postID)
}

func (r *ResponseRepository) ListBySolver(ctx context.Context, q database.Querier, solverID string) ([]model.Response, error) {
	return r.list(ctx, q, `SELECT * FROM responses WHERE solver_id = $1 ORDER BY created_at DESC, id`, solverID)
}

func (r *ResponseRepository) list(ctx context.Context, q database.Querier, stmt string, arg string) ([]model.Response, error) {
	rows, err := q.Query(ctx, stmt, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}

	responses, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Response])
	if err != nil {
		return nil, fmt.Errorf("failed to collect responses: %w", err)
	}
	return responses, nil
}

type UpdateResponseParams struct {
	Content          *string
	ProposedSolution *string
	EstimatedTime    *string
	ProposedPrice    *decimal.Decimal
}

func (r *ResponseRepository) Update(ctx context.Context, q database.Querier, id string, p UpdateResponseParams) (*model.Response, error) {
	b := newSetBuilder()
	if p.Content != nil {
		b.set("content", *p.Content)
	}
	if p.ProposedSolution != nil {
		b.set("proposed_solution", *p.ProposedSolution)
	}
	if p.EstimatedTime != nil {
		b.set("estimated_time", *p.EstimatedTime)
	}
	if p.ProposedPrice != nil {
		b.set("proposed_price", *p.ProposedPrice)
	}
	if b.empty() {
		return r.GetByID(ctx, q, id)
	}

	b.args["id"] = id
	rows, err := q.Query(ctx, `UPDATE responses SET `+b.sql()+` WHERE id = @id RETURNING *`, b.args)
	if err != nil {
		return nil, fmt.Errorf("failed to update response id=%s: %w", id, err)
	}

	response, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Response])
	if err != nil {
		return nil, fmt.Errorf("failed to collect updated response id=%s: %w", id, sqlerr.NotFound("responses", err))
	}
	return response, nil
}

// Decide accepts or rejects a pending response on behalf of the post
// author. Authorship and lifecycle are checked inside the database.
func (r *ResponseRepository) Decide(ctx context.Context, q database.Querier, id string, accept bool) (*model.Response, error) {
	rows, err := q.Query(ctx, `SELECT * FROM askhub.decide_response($1, $2)`, id, accept)
	if err != nil {
		return nil, fmt.Errorf("failed to decide response id=%s: %w", id, err)
	}

	response, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Response])
	if err != nil {
		return nil, fmt.Errorf("failed to decide response id=%s: %w", id, err)
	}
	return response, nil
}

// Complete marks an accepted response completed, resolves its post and
// credits the solver.
func (r *ResponseRepository) Complete(ctx context.Context, q database.Querier, id string) (*model.Response, error) {
	rows, err := q.Query(ctx, `SELECT * FROM askhub.complete_response($1)`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to complete response id=%s: %w", id, err)
	}

	response, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Response])
	if err != nil {
		return nil, fmt.Errorf("failed to complete response id=%s: %w", id, err)
	}
	return response, nil
}
