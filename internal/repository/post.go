package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PostRepository struct{}

func NewPostRepository() *PostRepository {
	return &PostRepository{}
}

type CreatePostParams struct {
	AuthorID     string
	CategoryID   string
	Title        string
	Description  string
	AIToolUsed   *string
	ErrorMessage *string
	CodeSnippet  *string
	BudgetType   model.BudgetType
	BudgetAmount *decimal.Decimal
	Urgency      model.Urgency
}

func (r *PostRepository) Create(ctx context.Context, q database.Querier, p CreatePostParams) (*model.Post, error) {
	stmt := `
		INSERT INTO posts (
			author_id, category_id, title, description, ai_tool_used,
			error_message, code_snippet, budget_type, budget_amount, urgency
		)
		VALUES (
			@author_id, @category_id, @title, @description, @ai_tool_used,
			@error_message, @code_snippet, @budget_type, @budget_amount, @urgency
		)
		RETURNING *
	`
	rows, err := q.Query(ctx, stmt, pgx.NamedArgs{
		"author_id":     p.AuthorID,
		"category_id":   p.CategoryID,
		"title":         p.Title,
		"description":   p.Description,
		"ai_tool_used":  p.AIToolUsed,
		"error_message": p.ErrorMessage,
		"code_snippet":  p.CodeSnippet,
		"budget_type":   p.BudgetType,
		"budget_amount": p.BudgetAmount,
		"urgency":       p.Urgency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post for author_id=%s: %w", p.AuthorID, err)
	}

	post, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect post for author_id=%s: %w", p.AuthorID, err)
	}
	return post, nil
}

func (r *PostRepository) GetByID(ctx context.Context, q database.Querier, id string) (*model.Post, error) {
	rows, err := q.Query(ctx, `SELECT * FROM posts WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query post id=%s: %w", id, err)
	}

	post, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to get post id=%s: %w", id, sqlerr.NotFound("posts", err))
	}
	return post, nil
}

type postRow struct {
	model.Post
	TotalCount int `db:"total_count"`
}

// List returns one page of posts matching filter, newest first, and the
// total number of matches.
func (r *PostRepository) List(ctx context.Context, q database.Querier, filter model.PostFilter) ([]model.Post, int, error) {
	_, limit, offset := normalizePage(filter.Page, filter.Limit)

	args := pgx.NamedArgs{"limit": limit, "offset": offset}
	var where []string
	if filter.CategorySlug != "" {
		where = append(where, "p.category_id = (SELECT id FROM categories WHERE slug = @category_slug)")
		args["category_slug"] = filter.CategorySlug
	}
	if filter.Status != "" {
		where = append(where, "p.status = @status")
		args["status"] = filter.Status
	}
	if filter.Urgency != "" {
		where = append(where, "p.urgency = @urgency")
		args["urgency"] = filter.Urgency
	}
	if filter.AuthorID != "" {
		where = append(where, "p.author_id = @author_id")
		args["author_id"] = filter.AuthorID
	}

	stmt := `SELECT p.*, COUNT(*) OVER () AS total_count FROM posts p`
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY p.created_at DESC, p.id LIMIT @limit OFFSET @offset"

	rows, err := q.Query(ctx, stmt, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect posts: %w", err)
	}

	total := 0
	posts := make([]model.Post, 0, len(collected))
	for _, row := range collected {
		total = row.TotalCount
		posts = append(posts, row.Post)
	}

	// An out-of-range page returns no rows and therefore no window count.
	if len(collected) == 0 && offset > 0 {
		countStmt := `SELECT COUNT(*) FROM posts p`
		if len(where) > 0 {
			countStmt += " WHERE " + strings.Join(where, " AND ")
		}
		if err := q.QueryRow(ctx, countStmt, args).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count posts: %w", err)
		}
	}

	return posts, total, nil
}

// UpdatePostParams carries an author's partial update.
type UpdatePostParams struct {
	CategoryID   *string
	Title        *string
	Description  *string
	AIToolUsed   *string
	ErrorMessage *string
	CodeSnippet  *string
	BudgetType   *model.BudgetType
	BudgetAmount *decimal.Decimal
	Urgency      *model.Urgency
	Status       *model.PostStatus
}

func (r *PostRepository) Update(ctx context.Context, q database.Querier, id string, p UpdatePostParams) (*model.Post, error) {
	b := newSetBuilder()
	if p.CategoryID != nil {
		b.set("category_id", *p.CategoryID)
	}
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Description != nil {
		b.set("description", *p.Description)
	}
	if p.AIToolUsed != nil {
		b.set("ai_tool_used", *p.AIToolUsed)
	}
	if p.ErrorMessage != nil {
		b.set("error_message", *p.ErrorMessage)
	}
	if p.CodeSnippet != nil {
		b.set("code_snippet", *p.CodeSnippet)
	}
	if p.BudgetType != nil {
		b.set("budget_type", *p.BudgetType)
	}
	if p.BudgetAmount != nil {
		b.set("budget_amount", *p.BudgetAmount)
	}
	if p.Urgency != nil {
		b.set("urgency", *p.Urgency)
	}
	if p.Status != nil {
		b.set("status", *p.Status)
	}
	if b.empty() {
		return r.GetByID(ctx, q, id)
	}

	b.args["id"] = id
	rows, err := q.Query(ctx, `UPDATE posts SET `+b.sql()+` WHERE id = @id RETURNING *`, b.args)
	if err != nil {
		return nil, fmt.Errorf("failed to update post id=%s: %w", id, err)
	}

	post, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect updated post id=%s: %w", id, sqlerr.NotFound("posts", err))
	}
	return post, nil
}

// Delete reports whether a row was removed. Under row-level security a
// post owned by someone else is invisible to the delete, so false means
// "missing or not yours".
func (r *PostRepository) Delete(ctx context.Context, q database.Querier, id string) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete post id=%s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementViews bumps view_count through the definer function, since
// readers cannot update posts they do not own.
func (r *PostRepository) IncrementViews(ctx context.Context, q database.Querier, id string) (int, error) {
	var views *int
	if err := q.QueryRow(ctx, `SELECT askhub.increment_post_views($1)`, id).Scan(&views); err != nil {
		return 0, fmt.Errorf("failed to increment views for post id=%s: %w", id, err)
	}
	if views == nil {
		return 0, fmt.Errorf("failed to increment views for post id=%s: %w", id, sqlerr.NotFound("posts", pgx.ErrNoRows))
	}
	return *views, nil
}
