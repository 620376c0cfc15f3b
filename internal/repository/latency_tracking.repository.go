package repository

import (
	"database/sql"
	"fmt"

	"stockbuddy/internal/db/models/postgres/public/model"
	"stockbuddy/internal/db/models/postgres/public/table"
	"stockbuddy/internal/domain"

	"github.com/google/uuid"
)

type latencyTrackingRepositoryHandler struct {
	Db *sql.DB
}

// LatencyTrackingRepository stores the span timings of a request
type LatencyTrackingRepository interface {
	Add(profile *domain.Profile, requestID *uuid.UUID) error
}

func NewLatencyTrackingRepository(db *sql.DB) LatencyTrackingRepository {
	return latencyTrackingRepositoryHandler{db}
}

func (h latencyTrackingRepositoryHandler) Add(profile *domain.Profile, requestID *uuid.UUID) error {
	bytes, err := profile.ToJsonBytes()
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	m := model.LatencyTracking{
		LatencyTrackingID: uuid.New(),
		ProcessingTimes:   string(bytes),
		RequestID:         requestID,
	}
	query := table.LatencyTracking.INSERT(table.LatencyTracking.AllColumns).MODEL(m)

	_, err = query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to insert latency tracking: %w", err)
	}

	return nil
}
