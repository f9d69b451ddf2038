package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/askhub/internal/authz"
	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/lib/utils"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ResponseService struct {
	tx        database.Transactor
	responses ResponseStore
	posts     PostStore
	profiles  ProfileStore
	notifier  Notifier
}

func NewResponseService(tx database.Transactor, responses ResponseStore, posts PostStore, profiles ProfileStore, notifier Notifier) *ResponseService {
	return &ResponseService{tx: tx, responses: responses, posts: posts, profiles: profiles, notifier: notifier}
}

func (s *ResponseService) ListByPost(ctx context.Context, callerID, postID string) ([]model.Response, error) {
	var out []model.Response
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		if _, err := s.posts.GetByID(ctx, q, postID); err != nil {
			return err
		}
		var err error
		out, err = s.responses.ListByPost(ctx, q, postID)
		return err
	})
	return out, err
}

func (s *ResponseService) ListMine(ctx context.Context, callerID string) ([]model.Response, error) {
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Authentication required", true)
	}
	var out []model.Response
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.responses.ListBySolver(ctx, q, callerID)
		return err
	})
	return out, err
}

type CreateResponseInput struct {
	Content          string
	ProposedSolution *string
	EstimatedTime    *string
	ProposedPrice    *decimal.Decimal
}

// Create records the caller's offer on an open post and notifies the
// post author.
func (s *ResponseService) Create(ctx context.Context, callerID, postID string, in CreateResponseInput) (*model.Response, error) {
	if err := authz.Check(authz.Responses, authz.Insert, callerID, callerID); err != nil {
		return nil, err
	}

	var (
		out  *model.Response
		post *model.Post
	)
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		solver, err := s.profiles.GetByID(ctx, q, callerID)
		if err != nil {
			if isNotFound(err) {
				return errProfileMissing()
			}
			return err
		}
		if !solver.UserRole.CanSolve() {
			return errs.NewForbiddenError("Only solvers can respond to posts", true)
		}

		post, err = s.posts.GetByID(ctx, q, postID)
		if err != nil {
			return err
		}
		if post.AuthorID == callerID {
			return errs.NewForbiddenError("You cannot respond to your own post", true)
		}
		if !post.Status.AcceptsResponses() {
			return errs.NewConflictError("This post is no longer accepting responses", true, errs.Code("POST_NOT_OPEN"))
		}

		exists, err := s.responses.ExistsForSolver(ctx, q, postID, callerID)
		if err != nil {
			return err
		}
		if exists {
			return errs.NewConflictError("You have already responded to this post", true, errs.Code("RESPONSE_ALREADY_EXISTS"))
		}

		out, err = s.responses.Create(ctx, q, repository.CreateResponseParams{
			PostID:           postID,
			SolverID:         callerID,
			Content:          strings.TrimSpace(in.Content),
			ProposedSolution: utils.TrimmedOrNil(in.ProposedSolution),
			EstimatedTime:    utils.TrimmedOrNil(in.EstimatedTime),
			ProposedPrice:    in.ProposedPrice,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, model.NewMessage{
		RecipientID:       post.AuthorID,
		SenderID:          &callerID,
		MessageType:       model.MessageResponse,
		Title:             "New response to your post",
		Content:           fmt.Sprintf("Someone offered to help with %q.", post.Title),
		RelatedPostID:     &post.ID,
		RelatedResponseID: &out.ID,
	})
	return out, nil
}

type UpdateResponseInput struct {
	Content          *string
	ProposedSolution *string
	EstimatedTime    *string
	ProposedPrice    *decimal.Decimal
}

// Update lets a solver revise a response that is still pending.
func (s *ResponseService) Update(ctx context.Context, callerID, id string, in UpdateResponseInput) (*model.Response, error) {
	var out *model.Response
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		current, err := s.responses.GetByID(ctx, q, id)
		if err != nil {
			return err
		}
		if err := authz.Check(authz.Responses, authz.Update, callerID, current.SolverID); err != nil {
			return err
		}
		if !current.Status.Editable() {
			return errs.NewConflictError("Only pending responses can be edited", true, errs.Code("RESPONSE_NOT_PENDING"))
		}

		out, err = s.responses.Update(ctx, q, id, repository.UpdateResponseParams{
			Content:          in.Content,
			ProposedSolution: in.ProposedSolution,
			EstimatedTime:    in.EstimatedTime,
			ProposedPrice:    in.ProposedPrice,
		})
		return err
	})
	return out, err
}

func (s *ResponseService) Accept(ctx context.Context, callerID, id string) (*model.Response, error) {
	return s.transition(ctx, callerID, id, model.ResponseAccepted)
}

func (s *ResponseService) Reject(ctx context.Context, callerID, id string) (*model.Response, error) {
	return s.transition(ctx, callerID, id, model.ResponseRejected)
}

func (s *ResponseService) Complete(ctx context.Context, callerID, id string) (*model.Response, error) {
	return s.transition(ctx, callerID, id, model.ResponseCompleted)
}

// transition is the post author's side of the response lifecycle. The
// database functions repeat the author and state checks under lock.
func (s *ResponseService) transition(ctx context.Context, callerID, id string, next model.ResponseStatus) (*model.Response, error) {
	if callerID == "" {
		return nil, errs.NewUnauthorizedError("Authentication required", true)
	}

	var (
		out  *model.Response
		post *model.Post
	)
	err := s.tx.AsUser(ctx, callerID, func(ctx context.Context, q database.Querier) error {
		current, err := s.responses.GetByID(ctx, q, id)
		if err != nil {
			return err
		}
		post, err = s.posts.GetByID(ctx, q, current.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != callerID {
			return errs.NewForbiddenError("Only the post author can decide on responses", true)
		}
		if !current.Status.CanTransitionTo(next) {
			return errs.NewConflictError(
				fmt.Sprintf("A %s response cannot be %s", current.Status, next),
				true, errs.Code("RESPONSE_INVALID_TRANSITION"),
			)
		}

		switch next {
		case model.ResponseCompleted:
			out, err = s.responses.Complete(ctx, q, id)
		default:
			out, err = s.responses.Decide(ctx, q, id, next == model.ResponseAccepted)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, model.NewMessage{
		RecipientID:       out.SolverID,
		SenderID:          &callerID,
		MessageType:       model.MessageOrder,
		Title:             "Your response was " + string(out.Status),
		Content:           fmt.Sprintf("Your response to %q is now %s.", post.Title, out.Status),
		RelatedPostID:     &post.ID,
		RelatedResponseID: &out.ID,
	})
	return out, nil
}

// notify runs after commit; a failed enqueue is logged and does not undo
// the change the caller already made.
func (s *ResponseService) notify(ctx context.Context, msg model.NewMessage) {
	if err := s.notifier.EnqueueNotification(ctx, msg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("recipient_id", msg.RecipientID).
			Str("type", string(msg.MessageType)).
			Msg("failed to enqueue notification")
	}
}
