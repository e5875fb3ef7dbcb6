package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/pkg/config"
	"github.com/warrior-support/wss-api/pkg/jobs"
)

// AnalysisService forwards examination results to the external voice/facial
// analysis service. Dispatch is fire-and-forget through the job queue; the
// submitting request never waits on or learns about the outcome.
type AnalysisService struct {
	client  *http.Client
	queue   *jobs.Queue
	cfg     config.AnalysisConfig
	logger  *zap.Logger
	enabled bool
}

type analysisPayload struct {
	ExaminationID string `json:"examinationId"`
	ArmyNo        string `json:"armyNo"`
	Depression    int    `json:"depression"`
	Anxiety       int    `json:"anxiety"`
	Stress        int    `json:"stress"`
}

// NewAnalysisService constructs the analysis dispatcher. The returned
// service is inert until Start is called.
func NewAnalysisService(cfg config.AnalysisConfig, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AnalysisService{
		client:  &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		logger:  logger,
		enabled: cfg.Enabled && cfg.BaseURL != "",
	}
	s.queue = jobs.NewQueue("analysis", s.handle, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the dispatch workers.
func (s *AnalysisService) Start(ctx context.Context) {
	if !s.enabled {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *AnalysisService) Stop() {
	if !s.enabled {
		return
	}
	s.queue.Stop()
}

// Dispatch enqueues one examination for analysis. Failures are logged and
// dropped; the caller is never blocked or failed by them.
func (s *AnalysisService) Dispatch(exam *models.Examination) {
	if !s.enabled || exam == nil {
		return
	}
	job := jobs.Job{
		ID:   exam.ID,
		Type: "examination.analyze",
		Payload: analysisPayload{
			ExaminationID: exam.ID,
			ArmyNo:        exam.ArmyNo,
			Depression:    exam.Depression,
			Anxiety:       exam.Anxiety,
			Stress:        exam.Stress,
		},
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue analysis job", zap.String("examination", exam.ID), zap.Error(err))
	}
}

func (s *AnalysisService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(analysisPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal analysis payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("call analysis service: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("analysis service returned %d", res.StatusCode)
	}

	s.logger.Debug("analysis dispatched", zap.String("examination", payload.ExaminationID))
	return nil
}
