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

type mockExamRepo struct {
	created  []*models.Examination
	byArmyNo map[string][]models.Examination
}

func (m *mockExamRepo) Create(ctx context.Context, exam *models.Examination) error {
	exam.ID = "exam-1"
	m.created = append(m.created, exam)
	return nil
}

func (m *mockExamRepo) ListByArmyNo(ctx context.Context, armyNo string) ([]models.Examination, error) {
	return m.byArmyNo[armyNo], nil
}

type mockExamPersonnelRepo struct {
	byArmyNo      map[string]*models.Personnel
	statusUpdates []models.SelfEvalStatus
}

func (m *mockExamPersonnelRepo) FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error) {
	if p, ok := m.byArmyNo[armyNo]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockExamPersonnelRepo) UpdateSelfEvalStatus(ctx context.Context, id string, status models.SelfEvalStatus) error {
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

type mockQuestionRepoForExam struct {
	questions []models.Question
}

func (m *mockQuestionRepoForExam) ListActive(ctx context.Context) ([]models.Question, error) {
	return m.questions, nil
}

type mockDispatcher struct {
	dispatched []*models.Examination
}

func (m *mockDispatcher) Dispatch(exam *models.Examination) {
	m.dispatched = append(m.dispatched, exam)
}

func examQuestionBank() []models.Question {
	return []models.Question{
		{ID: "d1", Category: models.CategoryDepression},
		{ID: "d2", Category: models.CategoryDepression},
		{ID: "a1", Category: models.CategoryAnxiety},
		{ID: "a2", Category: models.CategoryAnxiety},
		{ID: "s1", Category: models.CategoryStress},
		{ID: "s2", Category: models.CategoryStress},
	}
}

func newExamService(people map[string]*models.Personnel) (*ExaminationService, *mockExamRepo, *mockExamPersonnelRepo, *mockDispatcher) {
	repo := &mockExamRepo{byArmyNo: map[string][]models.Examination{}}
	personnel := &mockExamPersonnelRepo{byArmyNo: people}
	questions := &mockQuestionRepoForExam{questions: examQuestionBank()}
	dispatcher := &mockDispatcher{}
	svc := NewExaminationService(repo, personnel, questions, dispatcher, nil, validator.New(), zap.NewNop())
	return svc, repo, personnel, dispatcher
}

func userActor(armyNo string) *models.AuthContext {
	return &models.AuthContext{UserID: "u1", Role: models.RoleUser, ArmyNo: &armyNo}
}

func TestExaminationSubmitScoresSubscales(t *testing.T) {
	svc, repo, personnel, dispatcher := newExamService(map[string]*models.Personnel{
		"12345": {ID: "p1", ArmyNo: "12345", BattalionID: "b1"},
	})

	exam, err := svc.Submit(context.Background(), userActor("12345"), SubmitExamRequest{
		ArmyNo: "12345",
		Answers: []ExamAnswer{
			{QuestionID: "d1", Value: 3},
			{QuestionID: "d2", Value: 2},
			{QuestionID: "a1", Value: 1},
			{QuestionID: "a2", Value: 0},
			{QuestionID: "s1", Value: 2},
			{QuestionID: "s2", Value: 2},
		},
	})
	require.NoError(t, err)

	// Raw sums doubled: depression 5*2, anxiety 1*2, stress 4*2.
	assert.Equal(t, 10, exam.Depression)
	assert.Equal(t, 2, exam.Anxiety)
	assert.Equal(t, 8, exam.Stress)
	assert.Equal(t, models.SeverityMild, exam.DepressionSeverity)
	assert.Equal(t, models.SeverityNormal, exam.AnxietySeverity)
	assert.Equal(t, models.SeverityNormal, exam.StressSeverity)
	assert.Equal(t, models.SelfEvalCompleted, exam.Status)

	require.Len(t, repo.created, 1)
	assert.Equal(t, []models.SelfEvalStatus{models.SelfEvalExamAppeared, models.SelfEvalCompleted}, personnel.statusUpdates)
	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, "exam-1", dispatcher.dispatched[0].ID)
}

func TestExaminationSubmitSelfOnly(t *testing.T) {
	svc, repo, _, _ := newExamService(map[string]*models.Personnel{
		"99999": {ID: "p2", ArmyNo: "99999", BattalionID: "b1"},
	})

	_, err := svc.Submit(context.Background(), userActor("12345"), SubmitExamRequest{
		ArmyNo:  "99999",
		Answers: []ExamAnswer{{QuestionID: "d1", Value: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
	assert.Empty(t, repo.created)
}

func TestExaminationSubmitUnknownPersonnel(t *testing.T) {
	svc, _, _, _ := newExamService(map[string]*models.Personnel{})

	_, err := svc.Submit(context.Background(), userActor("12345"), SubmitExamRequest{
		ArmyNo:  "12345",
		Answers: []ExamAnswer{{QuestionID: "d1", Value: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestExaminationSubmitUnknownQuestion(t *testing.T) {
	svc, repo, personnel, _ := newExamService(map[string]*models.Personnel{
		"12345": {ID: "p1", ArmyNo: "12345", BattalionID: "b1"},
	})

	_, err := svc.Submit(context.Background(), userActor("12345"), SubmitExamRequest{
		ArmyNo:  "12345",
		Answers: []ExamAnswer{{QuestionID: "nope", Value: 1}},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Empty(t, repo.created)
	assert.Empty(t, personnel.statusUpdates)
}

func TestExaminationSubmitAnswerOutOfRange(t *testing.T) {
	svc, _, _, _ := newExamService(map[string]*models.Personnel{
		"12345": {ID: "p1", ArmyNo: "12345", BattalionID: "b1"},
	})

	_, err := svc.Submit(context.Background(), userActor("12345"), SubmitExamRequest{
		ArmyNo:  "12345",
		Answers: []ExamAnswer{{QuestionID: "d1", Value: 4}},
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestExaminationHistoryScoped(t *testing.T) {
	svc, repo, _, _ := newExamService(map[string]*models.Personnel{
		"12345": {ID: "p1", ArmyNo: "12345", BattalionID: "b1"},
	})
	repo.byArmyNo["12345"] = []models.Examination{{ID: "e1", ArmyNo: "12345"}}

	exams, err := svc.History(context.Background(), userActor("12345"), "12345")
	require.NoError(t, err)
	require.Len(t, exams, 1)

	_, err = svc.History(context.Background(), userActor("99999"), "12345")
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestSeverityBands(t *testing.T) {
	assert.Equal(t, models.SeverityNormal, classifyDepression(9))
	assert.Equal(t, models.SeverityMild, classifyDepression(10))
	assert.Equal(t, models.SeverityModerate, classifyDepression(14))
	assert.Equal(t, models.SeveritySevere, classifyDepression(21))
	assert.Equal(t, models.SeverityExtremelySevere, classifyDepression(28))

	assert.Equal(t, models.SeverityNormal, classifyAnxiety(7))
	assert.Equal(t, models.SeverityMild, classifyAnxiety(8))
	assert.Equal(t, models.SeverityModerate, classifyAnxiety(10))
	assert.Equal(t, models.SeveritySevere, classifyAnxiety(15))
	assert.Equal(t, models.SeverityExtremelySevere, classifyAnxiety(20))

	assert.Equal(t, models.SeverityNormal, classifyStress(14))
	assert.Equal(t, models.SeverityMild, classifyStress(15))
	assert.Equal(t, models.SeverityModerate, classifyStress(19))
	assert.Equal(t, models.SeveritySevere, classifyStress(26))
	assert.Equal(t, models.SeverityExtremelySevere, classifyStress(34))
}
