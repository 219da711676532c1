package handler

import (
	"judgefinder/internal/analytics/models"
	"judgefinder/pkg/domain"
	dErrors "judgefinder/pkg/domain-errors"
)

// maxIngestBatch bounds a single ingestion request so one oversized payload
// cannot stall the store.
const maxIngestBatch = 10000

// IngestCasesRequest is the HTTP request body for POST /admin/cases.
type IngestCasesRequest struct {
	JudgeID string              `json:"judge_id"`
	CourtID string              `json:"court_id"`
	Cases   []models.RawCaseRow `json:"cases"`

	// Parsed values (populated by Validate)
	parsedJudgeID domain.JudgeID
	parsedCourtID domain.CourtID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *IngestCasesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	judgeID, err := domain.ParseJudgeID(r.JudgeID)
	if err != nil {
		return err
	}
	r.parsedJudgeID = judgeID

	courtID, err := domain.ParseCourtID(r.CourtID)
	if err != nil {
		return err
	}
	r.parsedCourtID = courtID

	if len(r.Cases) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "cases is required")
	}
	if len(r.Cases) > maxIngestBatch {
		return dErrors.New(dErrors.CodeBadRequest, "too many cases in one batch")
	}

	return nil
}

// ParsedJudgeID returns the validated judge ID.
func (r *IngestCasesRequest) ParsedJudgeID() domain.JudgeID {
	return r.parsedJudgeID
}

// ParsedCourtID returns the validated court ID.
func (r *IngestCasesRequest) ParsedCourtID() domain.CourtID {
	return r.parsedCourtID
}
