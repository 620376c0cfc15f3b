package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"stockbuddy/internal/db/models/postgres/public/model"
	"stockbuddy/internal/db/models/postgres/public/table"
	"stockbuddy/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

var ErrCacheMiss = errors.New("no cached performance payload")

// PerformanceCacheRepository keeps the last baseline payload per user,
// one slot for nominal and one for inflation adjusted projections
type PerformanceCacheRepository interface {
	GetPayload(userID uuid.UUID, inflationAdjust bool) (*domain.PerformancePayload, error)
	UpsertPayload(userID uuid.UUID, inflationAdjust bool, payload domain.PerformancePayload) error
	GetAnnualisedReturns(userID uuid.UUID) (*domain.AnnualisedReturns, error)
	UpsertAnnualisedReturns(userID uuid.UUID, returns domain.AnnualisedReturns) error
}

type performanceCacheRepositoryHandler struct {
	Db *sql.DB
}

func NewPerformanceCacheRepository(db *sql.DB) PerformanceCacheRepository {
	return performanceCacheRepositoryHandler{Db: db}
}

func (h performanceCacheRepositoryHandler) GetPayload(userID uuid.UUID, inflationAdjust bool) (*domain.PerformancePayload, error) {
	t := table.PerformanceCache
	query := t.SELECT(t.AllColumns).
		WHERE(postgres.AND(
			t.UserID.EQ(postgres.UUID(userID)),
			t.InflationAdjust.EQ(postgres.Bool(inflationAdjust)),
		))

	result := model.PerformanceCache{}
	err := query.Query(h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached performance: %w", err)
	}

	payload := domain.PerformancePayload{}
	if err := json.Unmarshal([]byte(result.Payload), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode cached performance: %w", err)
	}

	return &payload, nil
}

func (h performanceCacheRepositoryHandler) UpsertPayload(userID uuid.UUID, inflationAdjust bool, payload domain.PerformancePayload) error {
	bytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode performance payload: %w", err)
	}

	t := table.PerformanceCache
	m := model.PerformanceCache{
		UserID:          userID,
		InflationAdjust: inflationAdjust,
		Payload:         string(bytes),
		UpdatedAt:       time.Now().UTC(),
	}
	query := t.INSERT(t.AllColumns).
		MODEL(m).
		ON_CONFLICT(t.UserID, t.InflationAdjust).
		DO_UPDATE(postgres.SET(
			t.Payload.SET(t.EXCLUDED.Payload),
			t.UpdatedAt.SET(t.EXCLUDED.UpdatedAt),
		))

	if _, err := query.Exec(h.Db); err != nil {
		return fmt.Errorf("failed to upsert cached performance: %w", err)
	}

	return nil
}

func (h performanceCacheRepositoryHandler) GetAnnualisedReturns(userID uuid.UUID) (*domain.AnnualisedReturns, error) {
	t := table.AnnualisedReturn
	query := t.SELECT(t.AllColumns).WHERE(t.UserID.EQ(postgres.UUID(userID)))

	result := model.AnnualisedReturn{}
	err := query.Query(h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get annualised returns: %w", err)
	}

	return &domain.AnnualisedReturns{
		Nominal: result.Nominal,
		Real:    result.Real,
	}, nil
}

// UpsertAnnualisedReturns keeps the previous nominal return when the new
// one is missing, but always overwrites the real return
func (h performanceCacheRepositoryHandler) UpsertAnnualisedReturns(userID uuid.UUID, returns domain.AnnualisedReturns) error {
	t := table.AnnualisedReturn
	m := model.AnnualisedReturn{
		UserID:    userID,
		Nominal:   returns.Nominal,
		Real:      returns.Real,
		UpdatedAt: time.Now().UTC(),
	}
	query := t.INSERT(t.AllColumns).
		MODEL(m).
		ON_CONFLICT(t.UserID).
		DO_UPDATE(postgres.SET(
			t.Nominal.SET(postgres.FloatExp(postgres.COALESCE(t.EXCLUDED.Nominal, t.Nominal))),
			t.Real.SET(t.EXCLUDED.Real),
			t.UpdatedAt.SET(t.EXCLUDED.UpdatedAt),
		))

	if _, err := query.Exec(h.Db); err != nil {
		return fmt.Errorf("failed to upsert annualised returns: %w", err)
	}

	return nil
}

type cacheSlot struct {
	userID          uuid.UUID
	inflationAdjust bool
}

type memoryPerformanceCacheRepositoryHandler struct {
	mu       *sync.RWMutex
	payloads map[cacheSlot][]byte
	returns  map[uuid.UUID]domain.AnnualisedReturns
}

// NewMemoryPerformanceCacheRepository is used when no database is
// configured. payloads are stored encoded so callers never share state
func NewMemoryPerformanceCacheRepository() PerformanceCacheRepository {
	return memoryPerformanceCacheRepositoryHandler{
		mu:       &sync.RWMutex{},
		payloads: map[cacheSlot][]byte{},
		returns:  map[uuid.UUID]domain.AnnualisedReturns{},
	}
}

func (h memoryPerformanceCacheRepositoryHandler) GetPayload(userID uuid.UUID, inflationAdjust bool) (*domain.PerformancePayload, error) {
	h.mu.RLock()
	raw, ok := h.payloads[cacheSlot{userID, inflationAdjust}]
	h.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}

	payload := domain.PerformancePayload{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode cached performance: %w", err)
	}
	return &payload, nil
}

func (h memoryPerformanceCacheRepositoryHandler) UpsertPayload(userID uuid.UUID, inflationAdjust bool, payload domain.PerformancePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode performance payload: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.payloads[cacheSlot{userID, inflationAdjust}] = raw
	return nil
}

func (h memoryPerformanceCacheRepositoryHandler) GetAnnualisedReturns(userID uuid.UUID) (*domain.AnnualisedReturns, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out, ok := h.returns[userID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return &out, nil
}

func (h memoryPerformanceCacheRepositoryHandler) UpsertAnnualisedReturns(userID uuid.UUID, returns domain.AnnualisedReturns) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if returns.Nominal == nil {
		returns.Nominal = h.returns[userID].Nominal
	}
	h.returns[userID] = returns
	return nil
}
