package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/warrior-support/wss-api/internal/models"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type mockAuthRepo struct {
	usersByName       map[string]*models.User
	usersByID         map[string]*models.User
	created           []*models.User
	armyNos           map[string]string
	updatePasswordErr error
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.usersByName[username]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.usersByID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := m.usersByName[username]
	return ok, nil
}

func (m *mockAuthRepo) ExistsByArmyNo(ctx context.Context, armyNo string, excludeID string) (bool, error) {
	id, ok := m.armyNos[armyNo]
	if !ok {
		return false, nil
	}
	return excludeID == "" || id != excludeID, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "generated"
	}
	if m.usersByName == nil {
		m.usersByName = make(map[string]*models.User)
	}
	if m.usersByID == nil {
		m.usersByID = make(map[string]*models.User)
	}
	m.usersByName[user.Username] = user
	m.usersByID[user.ID] = user
	m.created = append(m.created, user)
	return nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	if u, ok := m.usersByID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func newAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: 24 * time.Hour,
		Issuer:      "wss-test",
	})
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegisterThenLogin(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := newAuthService(repo)

	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "jco1",
		Password: "secret1",
		FullName: "A B",
		Role:     models.RoleJCO,
		ArmyNo:   "jc1",
		Rank:     "MAJ",
	})
	require.NoError(t, err)
	require.NotNil(t, info.ArmyNo)
	assert.Equal(t, "JC1", *info.ArmyNo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "jco1", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.RoleJCO, res.User.Role)

	claims, err := svc.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)
	assert.Equal(t, models.RoleJCO, claims.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := &mockAuthRepo{usersByName: map[string]*models.User{"jco1": {ID: "u1", Username: "jco1"}}}
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "jco1", Password: "secret1", FullName: "A B", Role: models.RoleJCO,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "already exists")
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "jco1", Password: "abc", FullName: "A B", Role: models.RoleJCO,
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestLoginUnknownUserUniform401(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, appErrors.ErrUnauthorized.Message, appErr.Message)
}

func TestLoginWrongPasswordUniform401(t *testing.T) {
	user := &models.User{ID: "u1", Username: "jco1", PasswordHash: hashOf(t, "secret1"), Active: true, Role: models.RoleJCO}
	repo := &mockAuthRepo{usersByName: map[string]*models.User{"jco1": user}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "jco1", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, appErrors.ErrUnauthorized.Message, appErr.Message)
}

func TestLoginInactiveUniform401(t *testing.T) {
	user := &models.User{ID: "u1", Username: "jco1", PasswordHash: hashOf(t, "secret1"), Active: false}
	repo := &mockAuthRepo{usersByName: map[string]*models.User{"jco1": user}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "jco1", Password: "secret1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, appErrors.ErrUnauthorized.Message, appErr.Message)
}

func TestVerifyTokenExpired(t *testing.T) {
	repo := &mockAuthRepo{}
	expired := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: -time.Hour,
	})

	token, _, err := expired.IssueToken(&models.User{ID: "u1", Username: "jco1", Role: models.RoleJCO})
	require.NoError(t, err)

	svc := newAuthService(repo)
	_, verr := svc.VerifyToken(token)
	require.Error(t, verr)
	assert.Equal(t, 401, appErrors.FromError(verr).Status)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	other := NewAuthService(&mockAuthRepo{}, validator.New(), zap.NewNop(), AuthConfig{TokenSecret: "other-secret", TokenExpiry: time.Hour})
	token, _, err := other.IssueToken(&models.User{ID: "u1", Username: "jco1", Role: models.RoleJCO})
	require.NoError(t, err)

	svc := newAuthService(&mockAuthRepo{})
	_, verr := svc.VerifyToken(token)
	require.Error(t, verr)
	assert.Equal(t, 401, appErrors.FromError(verr).Status)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	user := &models.User{ID: "u1", Username: "jco1", Role: models.RoleJCO, Active: true}
	repo := &mockAuthRepo{usersByID: map[string]*models.User{"u1": user}}
	svc := newAuthService(repo)

	token, _, err := svc.IssueToken(user)
	require.NoError(t, err)

	// Token stays valid but the gate must reject once the account is off.
	user.Active = false
	_, aerr := svc.Authenticate(context.Background(), token)
	require.Error(t, aerr)
	assert.Equal(t, 401, appErrors.FromError(aerr).Status)
}

func TestAuthenticateAttachesContext(t *testing.T) {
	armyNo := "JC1"
	battalion := "b1"
	user := &models.User{ID: "u1", Username: "jco1", Role: models.RoleJCO, ArmyNo: &armyNo, BattalionID: &battalion, Active: true}
	repo := &mockAuthRepo{usersByID: map[string]*models.User{"u1": user}}
	svc := newAuthService(repo)

	token, _, err := svc.IssueToken(user)
	require.NoError(t, err)

	actor, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", actor.UserID)
	assert.Equal(t, models.RoleJCO, actor.Role)
	require.NotNil(t, actor.BattalionID)
	assert.Equal(t, "b1", *actor.BattalionID)
}

func TestChangePassword(t *testing.T) {
	user := &models.User{ID: "u1", Username: "jco1", PasswordHash: hashOf(t, "secret1"), Active: true}
	repo := &mockAuthRepo{usersByID: map[string]*models.User{"u1": user}}
	svc := newAuthService(repo)

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret2")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	user := &models.User{ID: "u1", Username: "jco1", PasswordHash: hashOf(t, "secret1"), Active: true}
	repo := &mockAuthRepo{usersByID: map[string]*models.User{"u1": user}}
	svc := newAuthService(repo)

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret2"})
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}
