package api

import (
	"errors"
	"fmt"
	"time"

	"stockbuddy/internal/calculator"
	"stockbuddy/internal/domain"
	"stockbuddy/internal/repository"
	"stockbuddy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type projectionResponse struct {
	Session         domain.PlanSession    `json:"session"`
	Metrics         *domain.MetricsRecord `json:"metrics"`
	TotalValueLabel *string               `json:"totalValueLabel"`
	Chart           calculator.ChartView  `json:"chart"`
}

func newProjectionResponse(s domain.PlanSession) projectionResponse {
	var draft *domain.ScenarioDraft
	if s.ScenarioEnabled() {
		d := s.Scenario
		draft = &d
	}
	chart := calculator.BuildChart(s.Performance, s.ScenarioPerformance, calculator.ChartOptions{
		InflationAdjust: s.Plan.InflationAdjust,
		Scenario:        draft,
		Plan:            s.Plan,
		BenchmarkLabel:  s.Plan.Benchmark,
	})

	out := projectionResponse{
		Session: s,
		Metrics: calculator.ResolveMetrics(s.Metrics, s.Portfolio, s.Plan.DistributionPolicy),
		Chart:   chart,
	}
	if out.Metrics != nil {
		out.TotalValueLabel = strPtr(calculator.FormatRand(out.Metrics.TotalValue))
	}
	return out
}

// writeSession maps service errors onto status codes. a superseded
// request gets 409 since a newer one already owns the session
func writeSession(c *gin.Context, session *domain.PlanSession, err error) {
	parseErr := &time.ParseError{}
	switch {
	case err == nil:
		c.JSON(200, newProjectionResponse(*session))
	case errors.Is(err, service.ErrStaleResponse):
		returnErrorJsonCode(err, c, 409)
	case errors.Is(err, domain.ErrInvalidAnnualMonth),
		errors.Is(err, domain.ErrInvalidCustomRange),
		errors.As(err, &parseErr):
		returnErrorJsonCode(err, c, 400)
	case session != nil && session.ProjectionError != nil:
		returnErrorJsonCode(errors.New(*session.ProjectionError), c, 502)
	default:
		returnErrorJson(err, c)
	}
}

func parseUserID(c *gin.Context, raw uuid.UUID) (uuid.UUID, bool) {
	if raw == uuid.Nil {
		returnErrorJsonCode(errors.New("missing userID"), c, 400)
		return uuid.Nil, false
	}
	return raw, true
}

type projectionRequest struct {
	UserID       uuid.UUID          `json:"userID"`
	Plan         *domain.PlanInputs `json:"plan"`
	ForceRefresh bool               `json:"forceRefresh"`
}

func (m ApiHandler) projection(c *gin.Context) {
	var requestBody projectionRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	userID, ok := parseUserID(c, requestBody.UserID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if requestBody.Plan != nil {
		session, err := m.ProjectionService.UpdatePlan(ctx, userID, *requestBody.Plan, requestBody.ForceRefresh)
		writeSession(c, session, err)
		return
	}

	session, err := m.ProjectionService.FetchPerformance(ctx, userID, service.FetchOptions{
		ForceRefresh: requestBody.ForceRefresh,
	})
	writeSession(c, session, err)
}

type userRequest struct {
	UserID uuid.UUID `json:"userID"`
}

func (m ApiHandler) loadHoldings(c *gin.Context) {
	var requestBody userRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	userID, ok := parseUserID(c, requestBody.UserID)
	if !ok {
		return
	}

	session, err := m.ProjectionService.LoadHoldings(c.Request.Context(), userID)
	if err != nil {
		returnErrorJsonCode(err, c, 502)
		return
	}
	c.JSON(200, newProjectionResponse(*session))
}

type updateRowsRequest struct {
	UserID uuid.UUID          `json:"userID"`
	Rows   []domain.WeightRow `json:"rows"`
	// Holdings targets the held rows instead of the custom builder
	Holdings bool `json:"holdings"`
}

func (m ApiHandler) updateCustomRows(c *gin.Context) {
	var requestBody updateRowsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	userID, ok := parseUserID(c, requestBody.UserID)
	if !ok {
		return
	}

	if requestBody.Holdings {
		session := m.ProjectionService.UpdateHoldings(userID, requestBody.Rows)
		c.JSON(200, newRowsResponse(session.Holdings))
		return
	}
	session := m.ProjectionService.UpdateCustomRows(userID, requestBody.Rows)
	c.JSON(200, newRowsResponse(session.CustomRows))
}

type baselineRowsRequest struct {
	UserID uuid.UUID `json:"userID"`
}

func (m ApiHandler) loadBaselineRows(c *gin.Context) {
	var requestBody baselineRowsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	userID, ok := parseUserID(c, requestBody.UserID)
	if !ok {
		return
	}

	session, err := m.ProjectionService.LoadBaselineRows(userID)
	if errors.Is(err, service.ErrNoBaselineAllocation) {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to load baseline rows: %w", err), c)
		return
	}
	c.JSON(200, newRowsResponse(session.CustomRows))
}

func (m ApiHandler) exportProjection(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid userID: %w", err), c, 400)
		return
	}

	session := m.ProjectionService.GetSession(userID)
	if session.Performance == nil {
		returnErrorJsonCode(errors.New("no projection loaded"), c, 404)
		return
	}

	bytes, err := newProjectionResponse(session).Chart.ToCSV()
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to export projection: %w", err), c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="projection-%s.csv"`, userID))
	c.Data(200, "text/csv", bytes)
}

func (m ApiHandler) annualisedReturns(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid userID: %w", err), c, 400)
		return
	}

	out, err := m.PerformanceCacheRepository.GetAnnualisedReturns(userID)
	if errors.Is(err, repository.ErrCacheMiss) {
		returnErrorJsonCode(err, c, 404)
		return
	}
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to get annualised returns: %w", err), c)
		return
	}

	c.JSON(200, out)
}
