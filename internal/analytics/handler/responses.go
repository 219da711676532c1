package handler

import (
	"judgefinder/internal/analytics/models"
)

// BiasMetricsResponse is the HTTP response for GET /judges/{judgeID}/bias-metrics.
type BiasMetricsResponse struct {
	JudgeID string              `json:"judge_id"`
	Metrics *models.BiasMetrics `json:"metrics"`
}

// TimeToRulingResponse is the HTTP response for GET /judges/{judgeID}/time-to-ruling.
type TimeToRulingResponse struct {
	JudgeID string                      `json:"judge_id"`
	Summary *models.TimeToRulingSummary `json:"summary"`
}

// IngestCasesResponse is the HTTP response for POST /admin/cases.
type IngestCasesResponse struct {
	Inserted int `json:"inserted"`
}
