package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type mockEvalPersonnelRepo struct {
	byArmyNo map[string]*models.Personnel
	updates  int
}

func (m *mockEvalPersonnelRepo) FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error) {
	if p, ok := m.byArmyNo[armyNo]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEvalPersonnelRepo) UpdatePeerEvaluation(ctx context.Context, id string, evaluatorID string, answers json.RawMessage, finalScore int, evaluatedAt time.Time) error {
	m.updates++
	return nil
}

func jcoActor(battalion string) *models.AuthContext {
	return &models.AuthContext{UserID: "jco-1", Role: models.RoleJCO, BattalionID: &battalion}
}

func pendingPersonnel(armyNo, battalion string) *models.Personnel {
	return &models.Personnel{ID: "p1", ArmyNo: armyNo, BattalionID: battalion, PeerEvalStatus: models.PeerEvalPending}
}

func TestEvaluationSubmit(t *testing.T) {
	repo := &mockEvalPersonnelRepo{byArmyNo: map[string]*models.Personnel{"12345": pendingPersonnel("12345", "b1")}}
	svc := NewEvaluationService(repo, validator.New(), zap.NewNop())

	result, err := svc.Submit(context.Background(), jcoActor("b1"), SubmitEvaluationRequest{
		ArmyNo:     "12345",
		Answers:    json.RawMessage(`{"q1":2}`),
		FinalScore: 72,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PeerEvalEvaluated, result.PeerEvalStatus)
	require.NotNil(t, result.PeerFinalScore)
	assert.Equal(t, 72, *result.PeerFinalScore)
	assert.Equal(t, 1, repo.updates)
}

func TestEvaluationSubmitDifferentBattalion(t *testing.T) {
	repo := &mockEvalPersonnelRepo{byArmyNo: map[string]*models.Personnel{"12345": pendingPersonnel("12345", "b2")}}
	svc := NewEvaluationService(repo, validator.New(), zap.NewNop())

	_, err := svc.Submit(context.Background(), jcoActor("b1"), SubmitEvaluationRequest{
		ArmyNo:     "12345",
		Answers:    json.RawMessage(`{}`),
		FinalScore: 50,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "different battalion", appErr.Message)
	assert.Zero(t, repo.updates)
}

func TestEvaluationSubmitNotFoundBeforeForbidden(t *testing.T) {
	repo := &mockEvalPersonnelRepo{byArmyNo: map[string]*models.Personnel{}}
	svc := NewEvaluationService(repo, validator.New(), zap.NewNop())

	// Unknown army number in another battalion must yield 404, not 403.
	_, err := svc.Submit(context.Background(), jcoActor("b1"), SubmitEvaluationRequest{
		ArmyNo:     "99999",
		Answers:    json.RawMessage(`{}`),
		FinalScore: 50,
	})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestEvaluationResubmitConflicts(t *testing.T) {
	p := pendingPersonnel("12345", "b1")
	p.PeerEvalStatus = models.PeerEvalEvaluated
	repo := &mockEvalPersonnelRepo{byArmyNo: map[string]*models.Personnel{"12345": p}}
	svc := NewEvaluationService(repo, validator.New(), zap.NewNop())

	_, err := svc.Submit(context.Background(), jcoActor("b1"), SubmitEvaluationRequest{
		ArmyNo:     "12345",
		Answers:    json.RawMessage(`{}`),
		FinalScore: 60,
	})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
	assert.Zero(t, repo.updates)
}

func TestEvaluationExplicitReevaluate(t *testing.T) {
	p := pendingPersonnel("12345", "b1")
	p.PeerEvalStatus = models.PeerEvalEvaluated
	repo := &mockEvalPersonnelRepo{byArmyNo: map[string]*models.Personnel{"12345": p}}
	svc := NewEvaluationService(repo, validator.New(), zap.NewNop())

	result, err := svc.Submit(context.Background(), jcoActor("b1"), SubmitEvaluationRequest{
		ArmyNo:     "12345",
		Answers:    json.RawMessage(`{"q1":1}`),
		FinalScore: 40,
		Reevaluate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PeerEvalEvaluated, result.PeerEvalStatus)
	assert.Equal(t, 1, repo.updates)
}

func TestEvaluationScoreOutOfRange(t *testing.T) {
	repo := &mockEvalPersonnelRepo{byArmyNo: map[string]*models.Personnel{"12345": pendingPersonnel("12345", "b1")}}
	svc := NewEvaluationService(repo, validator.New(), zap.NewNop())

	_, err := svc.Submit(context.Background(), jcoActor("b1"), SubmitEvaluationRequest{
		ArmyNo:     "12345",
		Answers:    json.RawMessage(`{}`),
		FinalScore: 120,
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

