package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type mockAdminUserRepo struct {
	byID       map[string]*models.User
	lastFilter models.UserFilter
	updates    int
}

func newMockAdminUserRepo() *mockAdminUserRepo {
	return &mockAdminUserRepo{byID: map[string]*models.User{}}
}

func (m *mockAdminUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	m.lastFilter = filter
	var out []models.User
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *mockAdminUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAdminUserRepo) Update(ctx context.Context, user *models.User) error {
	m.byID[user.ID] = user
	m.updates++
	return nil
}

func (m *mockAdminUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	if u, ok := m.byID[id]; ok {
		u.Active = active
	}
	return nil
}

func newUserService(repo *mockAdminUserRepo) *UserService {
	return NewUserService(repo, nil, validator.New(), zap.NewNop())
}

func TestUserListRejectsUnknownRoleFilter(t *testing.T) {
	svc := newUserService(newMockAdminUserRepo())

	bogus := models.UserRole("ADMIN")
	_, _, err := svc.List(context.Background(), models.UserFilter{Role: &bogus})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestUserListPaginates(t *testing.T) {
	repo := newMockAdminUserRepo()
	repo.byID["u1"] = &models.User{ID: "u1", Username: "alpha", Role: models.RoleUser, Active: true}
	repo.byID["u2"] = &models.User{ID: "u2", Username: "bravo", Role: models.RoleJCO, Active: true}
	svc := newUserService(repo)

	users, pagination, err := svc.List(context.Background(), models.UserFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.TotalCount)
}

func TestUserSetActiveNotFound(t *testing.T) {
	svc := newUserService(newMockAdminUserRepo())

	_, err := svc.SetActive(context.Background(), "missing", false)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestUserSetActiveToggles(t *testing.T) {
	repo := newMockAdminUserRepo()
	repo.byID["u1"] = &models.User{ID: "u1", Username: "alpha", Role: models.RoleUser, Active: true}
	svc := newUserService(repo)

	user, err := svc.SetActive(context.Background(), "u1", false)
	require.NoError(t, err)
	assert.False(t, user.Active)
	assert.False(t, repo.byID["u1"].Active)
}

func TestUserUpdateRejectsUnknownRole(t *testing.T) {
	repo := newMockAdminUserRepo()
	repo.byID["u1"] = &models.User{ID: "u1", Username: "alpha", Role: models.RoleUser}
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), "u1", UpdateUserRequest{FullName: "Alpha", Role: "SUPERADMIN"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
	assert.Zero(t, repo.updates)
}

func TestUserUpdateChangesRoleAndBattalion(t *testing.T) {
	repo := newMockAdminUserRepo()
	repo.byID["u1"] = &models.User{ID: "u1", Username: "alpha", Role: models.RoleUser}
	svc := newUserService(repo)

	user, err := svc.Update(context.Background(), "u1", UpdateUserRequest{
		FullName:    "Alpha One",
		Role:        models.RoleJCO,
		Rank:        "NB SUB",
		BattalionID: "b1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleJCO, user.Role)
	require.NotNil(t, user.BattalionID)
	assert.Equal(t, "b1", *user.BattalionID)
	assert.Equal(t, 1, repo.updates)
}
