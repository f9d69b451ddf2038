package service

import (
	"context"
	"strings"

	"github.com/deppfellow/askhub/internal/authz"
	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/lib/utils"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/repository"
	"github.com/shopspring/decimal"
)

type PostService struct {
	tx    database.Transactor
	posts PostStore
}

func NewPostService(tx database.Transactor, posts PostStore) *PostService {
	return &PostService{tx: tx, posts: posts}
}

func (s *PostService) List(ctx context.Context, callerID string, filter model.PostFilter) (model.Paginated[model.Post], error) {
	filter.Page, filter.Limit = repository.NormalizePage(filter.Page, filter.Limit)

	var (
		posts []model.Post
		total int
	)
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		var err error
		posts, total, err = s.posts.List(ctx, q, filter)
		return err
	})
	if err != nil {
		return model.Paginated[model.Post]{}, err
	}
	return model.NewPaginated(posts, filter.Page, filter.Limit, total), nil
}

// ListMine lists the caller's own posts in every status.
func (s *PostService) ListMine(ctx context.Context, callerID string, filter model.PostFilter) (model.Paginated[model.Post], error) {
	if callerID == "" {
		return model.Paginated[model.Post]{}, errs.NewUnauthorizedError("Authentication required", true)
	}
	filter.AuthorID = callerID
	return s.List(ctx, callerID, filter)
}

// Get returns a post and counts the view.
func (s *PostService) Get(ctx context.Context, callerID, id string) (*model.Post, error) {
	var out *model.Post
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		post, err := s.posts.GetByID(ctx, q, id)
		if err != nil {
			return err
		}
		views, err := s.posts.IncrementViews(ctx, q, id)
		if err != nil {
			return err
		}
		post.ViewCount = views
		out = post
		return nil
	})
	return out, err
}

type CreatePostInput struct {
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

func (s *PostService) Create(ctx context.Context, callerID string, in CreatePostInput) (*model.Post, error) {
	if err := authz.Check(authz.Posts, authz.Insert, callerID, callerID); err != nil {
		return nil, err
	}
	if in.BudgetType == "" {
		in.BudgetType = model.BudgetNegotiable
	}
	if in.Urgency == "" {
		in.Urgency = model.UrgencyMedium
	}

	var out *model.Post
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.posts.Create(ctx, q, repository.CreatePostParams{
			AuthorID:     callerID,
			CategoryID:   in.CategoryID,
			Title:        strings.TrimSpace(in.Title),
			Description:  strings.TrimSpace(in.Description),
			AIToolUsed:   utils.TrimmedOrNil(in.AIToolUsed),
			ErrorMessage: in.ErrorMessage,
			CodeSnippet:  in.CodeSnippet,
			BudgetType:   in.BudgetType,
			BudgetAmount: in.BudgetAmount,
			Urgency:      in.Urgency,
		})
		return err
	})
	return out, err
}

type UpdatePostInput struct {
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

// Update changes a post owned by the caller. Status changes must follow
// the post lifecycle.
func (s *PostService) Update(ctx context.Context, callerID, id string, in UpdatePostInput) (*model.Post, error) {
	var out *model.Post
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		current, err := s.posts.GetByID(ctx, q, id)
		if err != nil {
			return err
		}
		if err := authz.Check(authz.Posts, authz.Update, callerID, current.AuthorID); err != nil {
			return err
		}
		if in.Status != nil && !current.Status.CanTransitionTo(*in.Status) {
			return errs.NewConflictError(
				"Cannot move a post from "+string(current.Status)+" to "+string(*in.Status),
				true, errs.Code("POST_INVALID_TRANSITION"),
			)
		}

		out, err = s.posts.Update(ctx, q, id, repository.UpdatePostParams{
			CategoryID:   in.CategoryID,
			Title:        in.Title,
			Description:  in.Description,
			AIToolUsed:   in.AIToolUsed,
			ErrorMessage: in.ErrorMessage,
			CodeSnippet:  in.CodeSnippet,
			BudgetType:   in.BudgetType,
			BudgetAmount: in.BudgetAmount,
			Urgency:      in.Urgency,
			Status:       in.Status,
		})
		return err
	})
	return out, err
}

func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	return s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		current, err := s.posts.GetByID(ctx, q, id)
		if err != nil {
			return err
		}
		if err := authz.Check(authz.Posts, authz.Delete, callerID, current.AuthorID); err != nil {
			return err
		}

		deleted, err := s.posts.Delete(ctx, q, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errs.NewNotFoundError("Post not found", true, nil)
		}
		return nil
	})
}
