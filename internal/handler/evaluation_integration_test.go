package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	internalmiddleware "github.com/warrior-support/wss-api/internal/middleware"
	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/internal/service"
)

type evaluationRepoStub struct {
	byArmyNo map[string]*models.Personnel
}

func (s *evaluationRepoStub) FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error) {
	if p, ok := s.byArmyNo[armyNo]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (s *evaluationRepoStub) UpdatePeerEvaluation(ctx context.Context, id string, evaluatorID string, answers json.RawMessage, finalScore int, evaluatedAt time.Time) error {
	return nil
}

type severeRepoStub struct {
	created int
}

func (s *severeRepoStub) Create(ctx context.Context, sp *models.SeverePersonnel) error {
	s.created++
	sp.ID = "sp-1"
	return nil
}

func (s *severeRepoStub) List(ctx context.Context, battalionID string) ([]models.SeverePersonnel, error) {
	return nil, nil
}

func (s *severeRepoStub) Delete(ctx context.Context, id string) (int64, error) {
	return 1, nil
}

func buildEvaluationRouter(repo *evaluationRepoStub, severeRepo *severeRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	battalion := "b1"
	router.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			c.Set(internalmiddleware.ContextUserKey, &models.AuthContext{
				UserID:      "test-user",
				Role:        models.UserRole(role),
				BattalionID: &battalion,
			})
		}
		c.Next()
	})

	evaluationHandler := NewEvaluationHandler(service.NewEvaluationService(repo, validator.New(), zap.NewNop()))
	severeHandler := NewSevereHandler(service.NewSevereService(severeRepo, validator.New(), zap.NewNop()))

	evaluators := internalmiddleware.RequireRoles(models.RoleJCO)
	router.POST("/evaluation/submit", evaluators, evaluationHandler.Submit)
	router.POST("/severePersonnel", severeHandler.BulkInsert)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEvaluationRoutesIntegration(t *testing.T) {
	repo := &evaluationRepoStub{byArmyNo: map[string]*models.Personnel{
		"12345": {ID: "p1", ArmyNo: "12345", BattalionID: "b1", PeerEvalStatus: models.PeerEvalPending},
		"54321": {ID: "p2", ArmyNo: "54321", BattalionID: "b1", PeerEvalStatus: models.PeerEvalEvaluated},
	}}
	router := buildEvaluationRouter(repo, &severeRepoStub{})

	payload := `{"armyNo":"12345","answers":{"q1":2},"finalScore":70}`

	t.Run("submit success", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/evaluation/submit", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Role", string(models.RoleJCO))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"EVALUATED"`)
	})

	t.Run("submit unauthorized without actor", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/evaluation/submit", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("submit forbidden for USER role", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/evaluation/submit", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Role", string(models.RoleUser))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("submit forbidden for CO role", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/evaluation/submit", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Role", string(models.RoleCO))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("resubmission conflicts", func(t *testing.T) {
		body := `{"armyNo":"54321","answers":{"q1":1},"finalScore":40}`
		req, _ := http.NewRequest(http.MethodPost, "/evaluation/submit", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-Role", string(models.RoleJCO))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestSevereBulkInsertIntegration(t *testing.T) {
	severeRepo := &severeRepoStub{}
	router := buildEvaluationRouter(&evaluationRepoStub{byArmyNo: map[string]*models.Personnel{}}, severeRepo)

	body := `[
		{"armyNo":"11111","name":"Alpha","battalion":"b1","severity":"SEVERE"},
		{"armyNo":"","name":"Broken","battalion":"b1","severity":"SEVERE"},
		{"armyNo":"22222","name":"Bravo","battalion":"b1","severity":"BOGUS"}
	]`
	req, _ := http.NewRequest(http.MethodPost, "/severePersonnel", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", string(models.RoleJCO))

	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"insertedCount":1`)
	require.Equal(t, 1, severeRepo.created)
}
