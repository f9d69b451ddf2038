// Package service holds the business rules of the marketplace.
//
// Every operation runs inside a database.Transactor transaction opened
// for the caller, so row-level security backs up the checks made here.
// Ownership is checked up front with authz to give callers a precise
// 401/403; lifecycle rules come from the model package.
package service

import (
	"context"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/repository"
)

type ProfileStore interface {
	Create(ctx context.Context, q database.Querier, p repository.CreateProfileParams) (*model.Profile, error)
	GetByID(ctx context.Context, q database.Querier, id string) (*model.Profile, error)
	Update(ctx context.Context, q database.Querier, id string, p repository.UpdateProfileParams) (*model.Profile, error)
	Delete(ctx context.Context, q database.Querier, id string) (bool, error)
}

type SolverProfileStore interface {
	GetByUserID(ctx context.Context, q database.Querier, userID string) (*model.SolverProfile, error)
	Upsert(ctx context.Context, q database.Querier, userID string, p repository.UpsertSolverProfileParams) (*model.SolverProfile, error)
}

type CategoryStore interface {
	ListActive(ctx context.Context, q database.Querier) ([]model.Category, error)
	GetBySlug(ctx context.Context, q database.Querier, slug string) (*model.Category, error)
}

type PostStore interface {
	Create(ctx context.Context, q database.Querier, p repository.CreatePostParams) (*model.Post, error)
	GetByID(ctx context.Context, q database.Querier, id string) (*model.Post, error)
	List(ctx context.Context, q database.Querier, filter model.PostFilter) ([]model.Post, int, error)
	Update(ctx context.Context, q database.Querier, id string, p repository.UpdatePostParams) (*model.Post, error)
	Delete(ctx context.Context, q database.Querier, id string) (bool, error)
	IncrementViews(ctx context.Context, q database.Querier, id string) (int, error)
}

type ResponseStore interface {
	Create(ctx context.Context, q database.Querier, p repository.CreateResponseParams) (*model.Response, error)
	GetByID(ctx context.Context, q database.Querier, id string) (*model.Response, error)
	ExistsForSolver(ctx context.Context, q database.Querier, postID, solverID string) (bool, error)
	ListByPost(ctx context.Context, q database.Querier, postID string) ([]model.Response, error)
	ListBySolver(ctx context.Context, q database.Querier, solverID string) ([]model.Response, error)
	Update(ctx context.Context, q database.Querier, id string, p repository.UpdateResponseParams) (*model.Response, error)
	Decide(ctx context.Context, q database.Querier, id string, accept bool) (*model.Response, error)
	Complete(ctx context.Context, q database.Querier, id string) (*model.Response, error)
}

type MessageStore interface {
	Insert(ctx context.Context, q database.Querier, m model.NewMessage) (*model.Message, error)
	List(ctx context.Context, q database.Querier, recipientID string, unreadOnly bool, page, limit int) ([]model.Message, int, error)
	CountUnread(ctx context.Context, q database.Querier, recipientID string) (int, error)
	MarkRead(ctx context.Context, q database.Querier, id, recipientID string) (*model.Message, error)
	MarkAllRead(ctx context.Context, q database.Querier, recipientID string) (int64, error)
}

// Notifier hands notifications to the background worker.
type Notifier interface {
	EnqueueNotification(ctx context.Context, msg model.NewMessage) error
	EnqueueWelcomeEmail(ctx context.Context, to, nickname string, role model.UserRole) error
}

// Cache is the Redis read cache. Misses are never errors.
type Cache interface {
	Categories(ctx context.Context) ([]model.Category, bool)
	SetCategories(ctx context.Context, categories []model.Category)
	UnreadCount(ctx context.Context, userID string) (n int, version int64, ok bool)
	SetUnreadCount(ctx context.Context, userID string, n int, version int64)
	InvalidateUnread(ctx context.Context, userID string)
}
