package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrior-support/wss-api/internal/models"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

func strptr(s string) *string { return &s }

func TestHasRole(t *testing.T) {
	actor := &models.AuthContext{Role: models.RoleJCO}
	assert.True(t, HasRole(actor, models.RoleJCO))
	assert.True(t, HasRole(actor, models.RoleCO, models.RoleJCO))
	assert.False(t, HasRole(actor, models.RoleCO))
	assert.False(t, HasRole(nil, models.RoleCO))
}

func TestCheckBattalionAccessCO(t *testing.T) {
	actor := &models.AuthContext{Role: models.RoleCO}
	assert.NoError(t, CheckBattalionAccess(actor, "b1"))
	assert.NoError(t, CheckBattalionAccess(actor, "b2"))
}

func TestCheckBattalionAccessJCO(t *testing.T) {
	actor := &models.AuthContext{Role: models.RoleJCO, BattalionID: strptr("b1")}
	assert.NoError(t, CheckBattalionAccess(actor, "b1"))

	err := CheckBattalionAccess(actor, "b2")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "different battalion", appErr.Message)
}

func TestCheckBattalionAccessJCOWithoutBattalion(t *testing.T) {
	actor := &models.AuthContext{Role: models.RoleJCO}
	err := CheckBattalionAccess(actor, "b1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDifferentBattalion.Code, appErrors.FromError(err).Code)
}

func TestCheckBattalionAccessUserDenied(t *testing.T) {
	actor := &models.AuthContext{Role: models.RoleUser, BattalionID: strptr("b1")}
	err := CheckBattalionAccess(actor, "b1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestCheckSelfAccess(t *testing.T) {
	actor := &models.AuthContext{Role: models.RoleUser, ArmyNo: strptr("12345")}
	assert.NoError(t, CheckSelfAccess(actor, "12345", "b1"))

	err := CheckSelfAccess(actor, "99999", "b1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestCheckSelfAccessJCOFallsBackToBattalion(t *testing.T) {
	actor := &models.AuthContext{Role: models.RoleJCO, BattalionID: strptr("b1")}
	assert.NoError(t, CheckSelfAccess(actor, "12345", "b1"))
	assert.Error(t, CheckSelfAccess(actor, "12345", "b2"))
}
