package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/pkg/export"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type mockPersonnelRepo struct {
	byArmyNo map[string]*models.Personnel
	created  []*models.Personnel
}

func newMockPersonnelRepo() *mockPersonnelRepo {
	return &mockPersonnelRepo{byArmyNo: map[string]*models.Personnel{}}
}

func (m *mockPersonnelRepo) ListByBattalion(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, int, error) {
	var out []models.Personnel
	for _, p := range m.byArmyNo {
		if p.BattalionID == filter.BattalionID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (m *mockPersonnelRepo) FindByID(ctx context.Context, id string) (*models.Personnel, error) {
	for _, p := range m.byArmyNo {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonnelRepo) FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error) {
	if p, ok := m.byArmyNo[armyNo]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonnelRepo) ExistsByArmyNo(ctx context.Context, armyNo string, excludeID string) (bool, error) {
	p, ok := m.byArmyNo[armyNo]
	return ok && p.ID != excludeID, nil
}

func (m *mockPersonnelRepo) Create(ctx context.Context, p *models.Personnel) error {
	p.ID = "p" + p.ArmyNo
	m.byArmyNo[p.ArmyNo] = p
	m.created = append(m.created, p)
	return nil
}

func (m *mockPersonnelRepo) Update(ctx context.Context, p *models.Personnel) error {
	m.byArmyNo[p.ArmyNo] = p
	return nil
}

func (m *mockPersonnelRepo) UpdatePeerEvaluation(ctx context.Context, id string, evaluatorID string, answers json.RawMessage, finalScore int, evaluatedAt time.Time) error {
	return nil
}

func (m *mockPersonnelRepo) Delete(ctx context.Context, id string) (int64, error) {
	for armyNo, p := range m.byArmyNo {
		if p.ID == id {
			delete(m.byArmyNo, armyNo)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockPersonnelRepo) DeleteByBattalion(ctx context.Context, battalionID string) (int64, error) {
	var n int64
	for armyNo, p := range m.byArmyNo {
		if p.BattalionID == battalionID {
			delete(m.byArmyNo, armyNo)
			n++
		}
	}
	return n, nil
}

func newCSVService(repo *mockPersonnelRepo) *CSVService {
	personnel := NewPersonnelService(repo, nil, 0, validator.New(), zap.NewNop())
	return NewCSVService(personnel, export.NewCSVExporter(), 100, validator.New(), zap.NewNop())
}

func coActor() *models.AuthContext {
	return &models.AuthContext{UserID: "co-1", Role: models.RoleCO}
}

func TestCSVImportPartialTolerance(t *testing.T) {
	repo := newMockPersonnelRepo()
	repo.byArmyNo["33333"] = &models.Personnel{ID: "p33333", ArmyNo: "33333", BattalionID: "b1"}
	svc := newCSVService(repo)

	input := strings.Join([]string{
		"ArmyNo,Rank,Name,SubUnit",
		"11111,SEP,Alpha One,A Coy",
		",SEP,Missing Number,A Coy",
		"22222,NK,Bravo Two,B Coy",
		"33333,SEP,Duplicate Three,A Coy",
	}, "\n")

	result, err := svc.Import(context.Background(), coActor(), "b1", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 5, result.Errors[1].Row)
	assert.Equal(t, "army number already exists", result.Errors[1].Message)
}

func TestCSVImportMissingArmyNoColumn(t *testing.T) {
	svc := newCSVService(newMockPersonnelRepo())

	_, err := svc.Import(context.Background(), coActor(), "b1", strings.NewReader("Rank,Name\nSEP,Alpha"))
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestCSVImportScopedToOwnBattalion(t *testing.T) {
	svc := newCSVService(newMockPersonnelRepo())

	_, err := svc.Import(context.Background(), jcoActor("b1"), "b2", strings.NewReader("ArmyNo\n11111"))
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestCSVImportRowLimitKeepsProcessedRows(t *testing.T) {
	repo := newMockPersonnelRepo()
	personnel := NewPersonnelService(repo, nil, 0, validator.New(), zap.NewNop())
	svc := NewCSVService(personnel, export.NewCSVExporter(), 2, validator.New(), zap.NewNop())

	input := strings.Join([]string{
		"ArmyNo,Rank,Name",
		"11111,SEP,Alpha One",
		"22222,NK,Bravo Two",
		"33333,SEP,Charlie Three",
	}, "\n")

	result, err := svc.Import(context.Background(), coActor(), "b1", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "truncated")
	assert.Len(t, repo.created, 2)
}

func TestCSVExportRoundTripsThroughImport(t *testing.T) {
	source := newMockPersonnelRepo()
	source.byArmyNo["12345"] = &models.Personnel{
		ID:          "p12345",
		ArmyNo:      "12345",
		Rank:        "SEP",
		Name:        "Alpha One",
		SubUnit:     "A Coy",
		BattalionID: "b1",
	}
	data, err := newCSVService(source).Export(context.Background(), coActor(), "b1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "\uFEFF"))

	target := newMockPersonnelRepo()
	result, err := newCSVService(target).Import(context.Background(), coActor(), "b1", strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Errors)
	require.Len(t, target.created, 1)
	assert.Equal(t, "12345", target.created[0].ArmyNo)
}

func TestCSVExportIncludesEvaluationState(t *testing.T) {
	repo := newMockPersonnelRepo()
	score := 82
	repo.byArmyNo["12345"] = &models.Personnel{
		ID:             "p12345",
		ArmyNo:         "12345",
		Rank:           "SEP",
		Name:           "Alpha One",
		BattalionID:    "b1",
		SelfEvalStatus: models.SelfEvalCompleted,
		PeerEvalStatus: models.PeerEvalEvaluated,
		PeerFinalScore: &score,
	}
	svc := newCSVService(repo)

	data, err := svc.Export(context.Background(), coActor(), "b1")
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "ArmyNo,Rank,Name")
	assert.Contains(t, out, "12345,SEP,Alpha One")
	assert.Contains(t, out, "COMPLETED")
	assert.Contains(t, out, "EVALUATED")
	assert.Contains(t, out, "82")
}
