package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/askhub/internal/errs"
	"github.com/deppfellow/askhub/internal/lib/utils"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requireHTTPStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func noRows() error {
	return fmt.Errorf("failed to get: %w", pgx.ErrNoRows)
}

func newProfileFixture() (*ProfileService, *fakeTx, *mockProfiles, *mockSolvers, *mockNotifier) {
	tx := &fakeTx{}
	profiles := &mockProfiles{}
	solvers := &mockSolvers{}
	notifier := &mockNotifier{}
	return NewProfileService(tx, profiles, solvers, notifier), tx, profiles, solvers, notifier
}

func TestProfileCreateSolverGetsSolverProfileAndWelcomeEmail(t *testing.T) {
	svc, tx, profiles, solvers, notifier := newProfileFixture()
	ctx := context.Background()
	email := "ada@example.com"

	profiles.On("Create", mock.Anything, mock.Anything, repository.CreateProfileParams{
		ID:       "user_1",
		Nickname: "ada",
		UserRole: model.RoleSolver,
		Email:    &email,
	}).Return(&model.Profile{ID: "user_1", Nickname: "ada", UserRole: model.RoleSolver, Email: &email}, nil)
	solvers.On("Upsert", mock.Anything, mock.Anything, "user_1", repository.UpsertSolverProfileParams{IsAvailable: true}).
		Return(&model.SolverProfile{UserID: "user_1", IsAvailable: true}, nil)
	notifier.On("EnqueueWelcomeEmail", mock.Anything, email, "ada", model.RoleSolver).Return(nil)

	out, err := svc.Create(ctx, "user_1", CreateProfileInput{
		Nickname: "  ada ",
		Role:     model.RoleSolver,
		Email:    utils.Ptr(" ada@example.com "),
	})

	require.NoError(t, err)
	assert.Equal(t, "user_1", out.Solver.UserID)
	assert.Equal(t, []string{"user_1"}, tx.users)
	profiles.AssertExpectations(t)
	solvers.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProfileCreateAskerDefaultsAndSkipsSolver(t *testing.T) {
	svc, _, profiles, solvers, notifier := newProfileFixture()

	profiles.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p repository.CreateProfileParams) bool {
		return p.UserRole == model.RoleAsker
	})).Return(&model.Profile{ID: "user_1", UserRole: model.RoleAsker}, nil)

	out, err := svc.Create(context.Background(), "user_1", CreateProfileInput{Nickname: "bob"})

	require.NoError(t, err)
	assert.Nil(t, out.Solver)
	solvers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "EnqueueWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileCreateSurvivesEnqueueFailure(t *testing.T) {
	svc, _, profiles, _, notifier := newProfileFixture()
	email := "a@b.co"

	profiles.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.Profile{ID: "user_1", UserRole: model.RoleAsker, Email: &email}, nil)
	notifier.On("EnqueueWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	out, err := svc.Create(context.Background(), "user_1", CreateProfileInput{Nickname: "a", Email: &email})

	require.NoError(t, err)
	assert.Equal(t, "user_1", out.ID)
}

func TestProfileCreateRequiresIdentity(t *testing.T) {
	svc, tx, _, _, _ := newProfileFixture()

	_, err := svc.Create(context.Background(), "", CreateProfileInput{Nickname: "x"})

	requireHTTPStatus(t, err, http.StatusUnauthorized)
	assert.Empty(t, tx.users)
}

func TestProfileMeWithoutProfileRedirectsToSetup(t *testing.T) {
	svc, _, profiles, _, _ := newProfileFixture()
	profiles.On("GetByID", mock.Anything, mock.Anything, "user_1").Return(nil, noRows())

	_, err := svc.Me(context.Background(), "user_1")

	httpErr := requireHTTPStatus(t, err, http.StatusNotFound)
	require.NotNil(t, httpErr.Action)
	assert.Equal(t, errs.ActionTypeRedirect, httpErr.Action.Type)
	assert.Equal(t, ProfileSetupPath, httpErr.Action.Value)
}

func TestProfileUpdateToSolverCreatesSolverProfile(t *testing.T) {
	svc, _, profiles, solvers, _ := newProfileFixture()
	role := model.RoleBoth

	profiles.On("Update", mock.Anything, mock.Anything, "user_1", repository.UpdateProfileParams{UserRole: &role}).
		Return(&model.Profile{ID: "user_1", UserRole: model.RoleBoth}, nil)
	solvers.On("GetByUserID", mock.Anything, mock.Anything, "user_1").Return(nil, noRows())
	solvers.On("Upsert", mock.Anything, mock.Anything, "user_1", mock.Anything).Return(&model.SolverProfile{UserID: "user_1"}, nil)

	out, err := svc.Update(context.Background(), "user_1", UpdateProfileInput{Role: &role})

	require.NoError(t, err)
	require.NotNil(t, out.Solver)
	solvers.AssertExpectations(t)
}

func TestProfileUpsertSolverRequiresSolvingRole(t *testing.T) {
	svc, _, profiles, solvers, _ := newProfileFixture()
	profiles.On("GetByID", mock.Anything, mock.Anything, "user_1").Return(&model.Profile{ID: "user_1", UserRole: model.RoleAsker}, nil)

	_, err := svc.UpsertSolver(context.Background(), "user_1", SolverProfileInput{ExperienceYears: 3})

	requireHTTPStatus(t, err, http.StatusForbidden)
	solvers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfilePurgeRunsAsSystem(t *testing.T) {
	svc, tx, profiles, _, _ := newProfileFixture()
	profiles.On("Delete", mock.Anything, mock.Anything, "user_1").Return(true, nil)

	deleted, err := svc.Purge(context.Background(), "user_1")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, tx.system)
	assert.Empty(t, tx.users)
}
