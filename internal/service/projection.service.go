package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"stockbuddy/internal/calculator"
	"stockbuddy/internal/domain"
	"stockbuddy/internal/logger"
	"stockbuddy/internal/repository"
	"stockbuddy/pkg/simulation"

	"github.com/google/uuid"
)

// ErrStaleResponse is returned when a newer request for the same user
// was issued while this one was in flight. its result is discarded
var ErrStaleResponse = errors.New("projection response superseded by a newer request")

var ErrNoBaselineAllocation = errors.New("No baseline allocation stored for this profile.")

type FetchOptions struct {
	// IncludeScenario nil follows the session's scenario state
	IncludeScenario *bool
	ForceRefresh    bool
}

type ProjectionService interface {
	GetSession(userID uuid.UUID) domain.PlanSession
	LoadHoldings(ctx context.Context, userID uuid.UUID) (*domain.PlanSession, error)
	UpdateHoldings(userID uuid.UUID, rows []domain.WeightRow) domain.PlanSession
	UpdateCustomRows(userID uuid.UUID, rows []domain.WeightRow) domain.PlanSession
	LoadBaselineRows(userID uuid.UUID) (*domain.PlanSession, error)
	UpdatePlan(ctx context.Context, userID uuid.UUID, plan domain.PlanInputs, forceRefresh bool) (*domain.PlanSession, error)
	FetchPerformance(ctx context.Context, userID uuid.UUID, opts FetchOptions) (*domain.PlanSession, error)
	UseCachedPerformance(ctx context.Context, userID uuid.UUID, inputs domain.PerformanceInputs) (*domain.PerformancePayload, error)
	RunScenario(ctx context.Context, userID uuid.UUID, draft domain.ScenarioDraft) (*domain.PlanSession, error)
	ResetScenario(ctx context.Context, userID uuid.UUID) (*domain.PlanSession, error)
	ApplyScenarioToPlan(ctx context.Context, userID uuid.UUID) (*domain.PlanSession, error)
	StaleResponses() int64
}

type projectionServiceHandler struct {
	SimulationClient           simulation.Client
	PerformanceCacheRepository repository.PerformanceCacheRepository

	mu       *sync.Mutex
	sessions map[uuid.UUID]domain.PlanSession
	stale    *atomic.Int64
}

func NewProjectionService(
	simulationClient simulation.Client,
	performanceCacheRepository repository.PerformanceCacheRepository,
) ProjectionService {
	return projectionServiceHandler{
		SimulationClient:           simulationClient,
		PerformanceCacheRepository: performanceCacheRepository,
		mu:                         &sync.Mutex{},
		sessions:                   map[uuid.UUID]domain.PlanSession{},
		stale:                      &atomic.Int64{},
	}
}

// sessionLocked returns the session for userID, creating a default one.
// callers must hold h.mu
func (h projectionServiceHandler) sessionLocked(userID uuid.UUID) domain.PlanSession {
	s, ok := h.sessions[userID]
	if !ok {
		s = domain.NewPlanSession(userID)
		h.sessions[userID] = s
	}
	return s
}

func (h projectionServiceHandler) GetSession(userID uuid.UUID) domain.PlanSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessionLocked(userID)
}

func (h projectionServiceHandler) StaleResponses() int64 {
	return h.stale.Load()
}

func (h projectionServiceHandler) UpdateHoldings(userID uuid.UUID, rows []domain.WeightRow) domain.PlanSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.sessionLocked(userID)
	s.Holdings = rows
	h.sessions[userID] = s
	return s
}

func (h projectionServiceHandler) UpdateCustomRows(userID uuid.UUID, rows []domain.WeightRow) domain.PlanSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.sessionLocked(userID)
	s.CustomRows = rows
	h.sessions[userID] = s
	return s
}

// LoadBaselineRows replaces the custom builder rows with the baseline
// allocation stored on the loaded portfolio
func (h projectionServiceHandler) LoadBaselineRows(userID uuid.UUID) (*domain.PlanSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.sessionLocked(userID)
	if s.Portfolio == nil || len(s.Portfolio.BaselineAllocations) == 0 {
		return nil, ErrNoBaselineAllocation
	}
	s.CustomRows = calculator.RowsFromAllocations(s.Portfolio.BaselineAllocations)
	h.sessions[userID] = s
	return &s, nil
}

// LoadHoldings pulls the portfolio, normalises the holding weights to
// whole percents and seeds the custom builder from them. metrics are
// only seeded when nothing has been projected yet
func (h projectionServiceHandler) LoadHoldings(ctx context.Context, userID uuid.UUID) (*domain.PlanSession, error) {
	portfolio, err := h.SimulationClient.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	raw := make([]float64, len(portfolio.Holdings))
	for i, holding := range portfolio.Holdings {
		raw[i] = holding.Weight.Or(0)
	}
	weights := calculator.NormalisePercentages(raw, nil, 100)

	holdings := make([]domain.WeightRow, len(portfolio.Holdings))
	for i, holding := range portfolio.Holdings {
		holdings[i] = domain.WeightRow{
			ID:     fmt.Sprintf("%s-%d", holding.Symbol, i),
			Symbol: holding.Symbol,
			Weight: weights[i],
		}
	}

	customRows := calculator.NormaliseRows(append([]domain.WeightRow{}, holdings...))
	if len(customRows) == 0 {
		customRows = calculator.AddRow(customRows)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.sessionLocked(userID)
	s.Portfolio = portfolio
	s.Holdings = holdings
	s.CustomRows = customRows
	if s.Metrics == nil {
		s.Metrics = calculator.FallbackMetrics(*portfolio, s.Plan.DistributionPolicy)
	}
	h.sessions[userID] = s

	logger.FromContext(ctx).Infow("loaded holdings", "userID", userID, "numHoldings", len(holdings))

	return &s, nil
}

// UpdatePlan validates and stores new baseline inputs, then refreshes
// the projection
func (h projectionServiceHandler) UpdatePlan(ctx context.Context, userID uuid.UUID, plan domain.PlanInputs, forceRefresh bool) (*domain.PlanSession, error) {
	h.mu.Lock()
	s := h.sessionLocked(userID)
	updated, err := s.WithPlan(plan)
	h.sessions[userID] = updated
	h.mu.Unlock()
	if err != nil {
		return &updated, fmt.Errorf("failed to update plan: %w", err)
	}

	return h.FetchPerformance(ctx, userID, FetchOptions{ForceRefresh: forceRefresh})
}

// UseCachedPerformance returns the stored payload for the inflation slot
// only when it was produced by exactly the same inputs
func (h projectionServiceHandler) UseCachedPerformance(ctx context.Context, userID uuid.UUID, inputs domain.PerformanceInputs) (*domain.PerformancePayload, error) {
	cached, err := h.PerformanceCacheRepository.GetPayload(userID, inputs.InflationAdjust)
	if err != nil {
		return nil, err
	}
	if cached.Inputs == nil || !cached.Inputs.Matches(inputs) {
		return nil, repository.ErrCacheMiss
	}
	return cached, nil
}

func (h projectionServiceHandler) FetchPerformance(ctx context.Context, userID uuid.UUID, opts FetchOptions) (*domain.PlanSession, error) {
	log := logger.FromContext(ctx)
	profile := domain.GetProfile(ctx)

	h.mu.Lock()
	s := h.sessionLocked(userID)
	includeScenario := s.ScenarioEnabled()
	if opts.IncludeScenario != nil {
		includeScenario = *opts.IncludeScenario
	}
	s.RequestSeq++
	seq := s.RequestSeq
	plan := s.Plan
	draft := s.Scenario
	h.sessions[userID] = s
	h.mu.Unlock()

	// a cache hit has no scenario, so only use it when none is wanted
	if !opts.ForceRefresh && !includeScenario {
		_, endSpan := profile.StartNewSpan("read cache")
		cached, err := h.UseCachedPerformance(ctx, userID, plan.CacheKey())
		endSpan()
		if err == nil {
			return h.applyCached(ctx, userID, seq, plan, cached)
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			log.Warnw("failed to read performance cache", "userID", userID, "error", err)
		}
	}

	var scenarioRequest *domain.ScenarioRequest
	if includeScenario {
		r := draft.ToRequest(plan)
		scenarioRequest = &r
	}
	req, err := simulation.NewRequest(userID, plan, scenarioRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to build simulation request: %w", err)
	}

	simulateSpan, endSpan := profile.StartNewSpan("simulate performance")
	response, fetchErr := h.SimulationClient.SimulatePerformance(domain.NewCtxWithSubProfile(ctx, simulateSpan), req)
	endSpan()

	h.mu.Lock()
	s = h.sessionLocked(userID)
	if s.RequestSeq != seq {
		h.mu.Unlock()
		h.stale.Add(1)
		log.Infow("discarding stale projection response", "userID", userID, "seq", seq, "latestSeq", s.RequestSeq)
		return nil, ErrStaleResponse
	}

	if fetchErr != nil {
		msg := "Unable to load projection right now. Please try again."
		s.ProjectionError = &msg
		if includeScenario {
			scenarioMsg := domain.ScenarioMessage_LoadFailed
			s.ScenarioMessage = &scenarioMsg
		}
		h.sessions[userID] = s
		h.mu.Unlock()
		return &s, fmt.Errorf("failed to fetch performance: %w", fetchErr)
	}

	baseline := response.Baseline
	inputs := plan.CacheKey()
	baseline.Inputs = &inputs

	s.Performance = &baseline
	s.Metrics = calculator.ComputeMetrics(&baseline, plan.InflationAdjust, plan.DistributionPolicy)
	s.ScenarioPerformance = response.Scenario
	s.ProjectionError = nil
	switch {
	case includeScenario && response.Scenario != nil:
		scenarioPolicy := draft.Policy
		if !scenarioPolicy.IsValid() {
			scenarioPolicy = plan.DistributionPolicy
		}
		s.ScenarioMetrics = calculator.ComputeMetrics(response.Scenario, plan.InflationAdjust, scenarioPolicy)
		s.ScenarioMessage = nil
	case includeScenario:
		msg := domain.ScenarioMessage_NotGenerated
		s.ScenarioMetrics = nil
		s.ScenarioMessage = &msg
	default:
		s.ScenarioMetrics = nil
		s.ScenarioMessage = nil
	}
	h.sessions[userID] = s
	h.mu.Unlock()

	_, endSpan = profile.StartNewSpan("persist payload")
	h.persist(ctx, userID, plan.InflationAdjust, baseline)
	endSpan()

	return &s, nil
}

func (h projectionServiceHandler) applyCached(ctx context.Context, userID uuid.UUID, seq uint64, plan domain.PlanInputs, cached *domain.PerformancePayload) (*domain.PlanSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.sessionLocked(userID)
	if s.RequestSeq != seq {
		h.stale.Add(1)
		return nil, ErrStaleResponse
	}
	s.Performance = cached
	s.Metrics = calculator.ComputeMetrics(cached, plan.InflationAdjust, plan.DistributionPolicy)
	s.ScenarioPerformance = nil
	s.ScenarioMetrics = nil
	s.ScenarioMessage = nil
	s.ProjectionError = nil
	h.sessions[userID] = s

	logger.FromContext(ctx).Debugw("using cached projection", "userID", userID)
	return &s, nil
}

// persist stores the payload and its annualised returns. failures only
// cost a future cache hit, so they are logged and dropped
func (h projectionServiceHandler) persist(ctx context.Context, userID uuid.UUID, inflationAdjust bool, payload domain.PerformancePayload) {
	log := logger.FromContext(ctx)
	if err := h.PerformanceCacheRepository.UpsertPayload(userID, inflationAdjust, payload); err != nil {
		log.Warnw("failed to cache performance payload", "userID", userID, "error", err)
	}
	returns := calculator.AnnualisedReturnsFrom(&payload)
	if err := h.PerformanceCacheRepository.UpsertAnnualisedReturns(userID, returns); err != nil {
		log.Warnw("failed to store annualised returns", "userID", userID, "error", err)
	}
}

func (h projectionServiceHandler) RunScenario(ctx context.Context, userID uuid.UUID, draft domain.ScenarioDraft) (*domain.PlanSession, error) {
	h.mu.Lock()
	s := h.sessionLocked(userID)
	updated, err := s.RunScenario(draft)
	h.sessions[userID] = updated
	h.mu.Unlock()
	if err != nil {
		return &updated, err
	}

	include := true
	return h.FetchPerformance(ctx, userID, FetchOptions{IncludeScenario: &include})
}

func (h projectionServiceHandler) ResetScenario(ctx context.Context, userID uuid.UUID) (*domain.PlanSession, error) {
	h.mu.Lock()
	s := h.sessionLocked(userID).ResetScenario()
	h.sessions[userID] = s
	h.mu.Unlock()

	include := false
	return h.FetchPerformance(ctx, userID, FetchOptions{IncludeScenario: &include})
}

func (h projectionServiceHandler) ApplyScenarioToPlan(ctx context.Context, userID uuid.UUID) (*domain.PlanSession, error) {
	h.mu.Lock()
	s := h.sessionLocked(userID).ApplyScenarioToPlan()
	h.sessions[userID] = s
	h.mu.Unlock()

	include := false
	return h.FetchPerformance(ctx, userID, FetchOptions{IncludeScenario: &include})
}
