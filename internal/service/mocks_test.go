package service

import (
	"context"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/repository"
	"github.com/stretchr/testify/mock"
)

// fakeTx runs fn without a database and records who it ran as.
type fakeTx struct {
	users  []string
	system int
}

func (f *fakeTx) AsUser(ctx context.Context, userID string, fn database.TxFunc) error {
	f.users = append(f.users, userID)
	return fn(ctx, nil)
}

func (f *fakeTx) AsSystem(ctx context.Context, fn database.TxFunc) error {
	f.system++
	return fn(ctx, nil)
}

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) Create(ctx context.Context, q database.Querier, p repository.CreateProfileParams) (*model.Profile, error) {
	args := m.Called(ctx, q, p)
	profile, _ := args.Get(0).(*model.Profile)
	return profile, args.Error(1)
}

func (m *mockProfiles) GetByID(ctx context.Context, q database.Querier, id string) (*model.Profile, error) {
	args := m.Called(ctx, q, id)
	profile, _ := args.Get(0).(*model.Profile)
	return profile, args.Error(1)
}

func (m *mockProfiles) Update(ctx context.Context, q database.Querier, id string, p repository.UpdateProfileParams) (*model.Profile, error) {
	args := m.Called(ctx, q, id, p)
	profile, _ := args.Get(0).(*model.Profile)
	return profile, args.Error(1)
}

func (m *mockProfiles) Delete(ctx context.Context, q database.Querier, id string) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

type mockSolvers struct{ mock.Mock }

func (m *mockSolvers) GetByUserID(ctx context.Context, q database.Querier, userID string) (*model.SolverProfile, error) {
	args := m.Called(ctx, q, userID)
	solver, _ := args.Get(0).(*model.SolverProfile)
	return solver, args.Error(1)
}

func (m *mockSolvers) Upsert(ctx context.Context, q database.Querier, userID string, p repository.UpsertSolverProfileParams) (*model.SolverProfile, error) {
	args := m.Called(ctx, q, userID, p)
	solver, _ := args.Get(0).(*model.SolverProfile)
	return solver, args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) ListActive(ctx context.Context, q database.Querier) ([]model.Category, error) {
	args := m.Called(ctx, q)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *mockCategories) GetBySlug(ctx context.Context, q database.Querier, slug string) (*model.Category, error) {
	args := m.Called(ctx, q, slug)
	category, _ := args.Get(0).(*model.Category)
	return category, args.Error(1)
}

type mockPosts struct{ mock.Mock }

func (m *mockPosts) Create(ctx context.Context, q database.Querier, p repository.CreatePostParams) (*model.Post, error) {
	args := m.Called(ctx, q, p)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

func (m *mockPosts) GetByID(ctx context.Context, q database.Querier, id string) (*model.Post, error) {
	args := m.Called(ctx, q, id)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

func (m *mockPosts) List(ctx context.Context, q database.Querier, filter model.PostFilter) ([]model.Post, int, error) {
	args := m.Called(ctx, q, filter)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Int(1), args.Error(2)
}

func (m *mockPosts) Update(ctx context.Context, q database.Querier, id string, p repository.UpdatePostParams) (*model.Post, error) {
	args := m.Called(ctx, q, id, p)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

func (m *mockPosts) Delete(ctx context.Context, q database.Querier, id string) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPosts) IncrementViews(ctx context.Context, q database.Querier, id string) (int, error) {
	args := m.Called(ctx, q, id)
	return args.Int(0), args.Error(1)
}

type mockResponses struct{ mock.Mock }

func (m *mockResponses) Create(ctx context.Context, q database.Querier, p repository.CreateResponseParams) (*model.Response, error) {
	args := m.Called(ctx, q, p)
	response, _ := args.Get(0).(*model.Response)
	return response, args.Error(1)
}

func (m *mockResponses) GetByID(ctx context.Context, q database.Querier, id string) (*model.Response, error) {
	args := m.Called(ctx, q, id)
	response, _ := args.Get(0).(*model.Response)
	return response, args.Error(1)
}

func (m *mockResponses) ExistsForSolver(ctx context.Context, q database.Querier, postID, solverID string) (bool, error) {
	args := m.Called(ctx, q, postID, solverID)
	return args.Bool(0), args.Error(1)
}

func (m *mockResponses) ListByPost(ctx context.Context, q database.Querier, postID string) ([]model.Response, error) {
	args := m.Called(ctx, q, postID)
	responses, _ := args.Get(0).([]model.Response)
	return responses, args.Error(1)
}

func (m *mockResponses) ListBySolver(ctx context.Context, q database.Querier, solverID string) ([]model.Response, error) {
	args := m.Called(ctx, q, solverID)
	responses, _ := args.Get(0).([]model.Response)
	return responses, args.Error(1)
}

func (m *mockResponses) Update(ctx context.Context, q database.Querier, id string, p repository.UpdateResponseParams) (*model.Response, error) {
	args := m.Called(ctx, q, id, p)
	response, _ := args.Get(0).(*model.Response)
	return response, args.Error(1)
}

func (m *mockResponses) Decide(ctx context.Context, q database.Querier, id string, accept bool) (*model.Response, error) {
	args := m.Called(ctx, q, id, accept)
	response, _ := args.Get(0).(*model.Response)
	return response, args.Error(1)
}

func (m *mockResponses) Complete(ctx context.Context, q database.Querier, id string) (*model.Response, error) {
	args := m.Called(ctx, q, id)
	response, _ := args.Get(0).(*model.Response)
	return response, args.Error(1)
}

type mockMessages struct{ mock.Mock }

func (m *mockMessages) Insert(ctx context.Context, q database.Querier, msg model.NewMessage) (*model.Message, error) {
	args := m.Called(ctx, q, msg)
	message, _ := args.Get(0).(*model.Message)
	return message, args.Error(1)
}

func (m *mockMessages) List(ctx context.Context, q database.Querier, recipientID string, unreadOnly bool, page, limit int) ([]model.Message, int, error) {
	args := m.Called(ctx, q, recipientID, unreadOnly, page, limit)
	messages, _ := args.Get(0).([]model.Message)
	return messages, args.Int(1), args.Error(2)
}

func (m *mockMessages) CountUnread(ctx context.Context, q database.Querier, recipientID string) (int, error) {
	args := m.Called(ctx, q, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *mockMessages) MarkRead(ctx context.Context, q database.Querier, id, recipientID string) (*model.Message, error) {
	args := m.Called(ctx, q, id, recipientID)
	message, _ := args.Get(0).(*model.Message)
	return message, args.Error(1)
}

func (m *mockMessages) MarkAllRead(ctx context.Context, q database.Querier, recipientID string) (int64, error) {
	args := m.Called(ctx, q, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) EnqueueNotification(ctx context.Context, msg model.NewMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockNotifier) EnqueueWelcomeEmail(ctx context.Context, to, nickname string, role model.UserRole) error {
	return m.Called(ctx, to, nickname, role).Error(0)
}

// memCache is an in-memory Cache.
type memCache struct {
	categories []model.Category
	unread     map[string]int
	versions   map[string]int64
}

func newMemCache() *memCache {
	return &memCache{unread: map[string]int{}, versions: map[string]int64{}}
}

func (c *memCache) Categories(context.Context) ([]model.Category, bool) {
	return c.categories, c.categories != nil
}

func (c *memCache) SetCategories(_ context.Context, categories []model.Category) {
	c.categories = categories
}

func (c *memCache) UnreadCount(_ context.Context, userID string) (int, int64, bool) {
	n, ok := c.unread[userID]
	return n, c.versions[userID], ok
}

func (c *memCache) SetUnreadCount(_ context.Context, userID string, n int, version int64) {
	if c.versions[userID] != version {
		return
	}
	c.unread[userID] = n
}

func (c *memCache) InvalidateUnread(_ context.Context, userID string) {
	c.versions[userID]++
	delete(c.unread, userID)
}
