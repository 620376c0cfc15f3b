package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stockbuddy/internal/domain"
	"stockbuddy/internal/repository"
	"stockbuddy/internal/service"
	mock_service "stockbuddy/internal/service/mocks"
	"stockbuddy/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) (*gin.Engine, *mock_service.MockProjectionService, repository.PerformanceCacheRepository) {
	ctrl := gomock.NewController(t)
	projectionService := mock_service.NewMockProjectionService(ctrl)
	cache := repository.NewMemoryPerformanceCacheRepository()
	handler := ApiHandler{
		ProjectionService:          projectionService,
		PerformanceCacheRepository: cache,
	}
	return handler.InitializeRouterEngine(), projectionService, cache
}

func doJson(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	raw := []byte{}
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRebalanceResolvers(t *testing.T) {
	router, _, _ := newTestHandler(t)

	t.Run("rebalance", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/rebalance", map[string]any{
			"weights": []float64{25, 25, 25, 25},
			"index":   2,
			"value":   50,
		})
		require.Equal(t, 200, w.Code)
		out := decode[weightsResponse](t, w)
		require.Equal(t, []int{25, 25, 50, 0}, out.Weights)
	})

	t.Run("normalize defaults to 100", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/normalize", map[string]any{
			"weights": []float64{0, 0, 0},
		})
		require.Equal(t, 200, w.Code)
		require.Equal(t, []int{34, 33, 33}, decode[weightsResponse](t, w).Weights)
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rebalance", strings.NewReader("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, 400, w.Code)
	})
}

func TestWeightResolvers(t *testing.T) {
	router, _, _ := newTestHandler(t)
	rows := []domain.WeightRow{
		{ID: "a", Symbol: "VTI", Weight: 60},
		{ID: "b", Symbol: "BND", Weight: 40},
	}

	t.Run("adjust weight", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/adjustWeight", map[string]any{
			"rows":  rows,
			"index": 0,
			"delta": 40,
		})
		require.Equal(t, 200, w.Code)

		out := map[string]any{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, false, out["canIncrement"])
		require.Equal(t, true, out["canDecrement"])
		require.Equal(t, 100.0, out["totalWeight"])
		require.Equal(t, 0.0, out["weightDelta"])
	})

	t.Run("set weight strips non digits", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/setWeight", map[string]any{
			"rows":  rows,
			"index": 0,
			"value": "7a5%",
		})
		require.Equal(t, 200, w.Code)
		out := decode[rowsResponse](t, w)
		require.Equal(t, 75, out.Rows[0].Weight)
		require.Equal(t, 25, out.Rows[1].Weight)
		require.Equal(t, 100, out.TotalWeight)
	})

	t.Run("move row", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/moveRow", map[string]any{
			"rows":  rows,
			"index": 1,
			"up":    true,
		})
		require.Equal(t, 200, w.Code)
		out := decode[rowsResponse](t, w)
		require.Equal(t, "BND", out.Rows[0].Symbol)
	})

	t.Run("remove row", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/removeRow", map[string]any{
			"rows": rows,
			"id":   "b",
		})
		require.Equal(t, 200, w.Code)
		out := decode[rowsResponse](t, w)
		require.Len(t, out.Rows, 1)
		require.Equal(t, "VTI", out.Rows[0].Symbol)
		require.Equal(t, 40, out.WeightDelta)
	})

	t.Run("custom portfolio", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/customPortfolio", map[string]any{
			"rows": []domain.WeightRow{
				{ID: "a", Symbol: " VTI ", Weight: 30},
				{ID: "b", Symbol: "VTI", Weight: 20},
				{ID: "c", Symbol: "", Weight: 50},
			},
		})
		require.Equal(t, 200, w.Code)
		require.Equal(t, "", cmp.Diff(customPortfolioResponse{
			Allocations: []domain.Allocation{{Symbol: "VTI", Weight: 100}},
		}, decode[customPortfolioResponse](t, w)))
	})

	t.Run("custom portfolio without symbols", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/customPortfolio", map[string]any{
			"rows": []domain.WeightRow{{ID: "a", Weight: 100}},
		})
		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "choose valid instruments")
	})
}

func TestMetricsResolver(t *testing.T) {
	router, _, _ := newTestHandler(t)

	t.Run("no payload", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/metrics", map[string]any{})
		require.Equal(t, 200, w.Code)
		require.Equal(t, "null", w.Body.String())
	})

	t.Run("inflation adjusted", func(t *testing.T) {
		w := doJson(t, router, http.MethodPost, "/metrics", map[string]any{
			"payload": map[string]any{
				"series":            []any{},
				"series_real":       []any{map[string]any{"date": "2024-01-01", "value": 120000}},
				"ending_value":      150000,
				"total_invested":    100000,
				"total_return":      50000,
				"total_return_real": 20000,
			},
			"inflationAdjust": true,
			"fallbackPolicy":  "cash_out",
		})
		require.Equal(t, 200, w.Code)
		out := decode[domain.MetricsRecord](t, w)
		require.Equal(t, 120000.0, out.TotalValue)
		require.Equal(t, 150000.0, out.HoldingsValue)
		require.Equal(t, 20.0, out.TotalReturnPct)
		require.Equal(t, domain.DistributionPolicy_CashOut, out.DistributionPolicy)
	})
}

func newSessionWithPerformance(userID uuid.UUID) domain.PlanSession {
	s := domain.NewPlanSession(userID)
	s.Performance = &domain.PerformancePayload{
		Series: []domain.SeriesPoint{
			{Date: "2024-01-01", Value: domain.NewOptionalFloat(1000)},
			{Date: "2024-02-01", Value: domain.NewOptionalFloat(1100)},
		},
		EndingValue:   domain.NewOptionalFloat(1100),
		TotalInvested: domain.NewOptionalFloat(1000),
	}
	s.Metrics = &domain.MetricsRecord{TotalValue: 1100, TotalInvested: 1000}
	return s
}

func TestProjectionResolvers(t *testing.T) {
	userID := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		router, _, _ := newTestHandler(t)
		w := doJson(t, router, http.MethodPost, "/projection", map[string]any{})
		require.Equal(t, 400, w.Code)
	})

	t.Run("fetch", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		session := newSessionWithPerformance(userID)
		projectionService.EXPECT().
			FetchPerformance(gomock.Any(), userID, service.FetchOptions{ForceRefresh: true}).
			Return(&session, nil)

		w := doJson(t, router, http.MethodPost, "/projection", map[string]any{
			"userID":       userID,
			"forceRefresh": true,
		})
		require.Equal(t, 200, w.Code)

		out := map[string]any{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, "R1 100", out["totalValueLabel"])
		chart := out["chart"].(map[string]any)
		require.Equal(t, []any{"Jan 2024", "Feb 2024"}, chart["labels"])
	})

	t.Run("update plan", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		plan := domain.NewDefaultPlanInputs()
		plan.InflationAdjust = true
		session := newSessionWithPerformance(userID)
		session.Plan = plan
		projectionService.EXPECT().UpdatePlan(gomock.Any(), userID, plan, false).Return(&session, nil)

		w := doJson(t, router, http.MethodPost, "/projection", map[string]any{
			"userID": userID,
			"plan":   plan,
		})
		require.Equal(t, 200, w.Code)
	})

	t.Run("invalid custom range", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		session := domain.NewPlanSession(userID)
		projectionService.EXPECT().
			UpdatePlan(gomock.Any(), userID, gomock.Any(), false).
			Return(&session, domain.ErrInvalidCustomRange)

		w := doJson(t, router, http.MethodPost, "/projection", map[string]any{
			"userID": userID,
			"plan":   domain.NewDefaultPlanInputs(),
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("stale", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		projectionService.EXPECT().FetchPerformance(gomock.Any(), userID, gomock.Any()).Return(nil, service.ErrStaleResponse)

		w := doJson(t, router, http.MethodPost, "/projection", map[string]any{"userID": userID})
		require.Equal(t, 409, w.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		session := domain.NewPlanSession(userID)
		session.ProjectionError = util.StringPointer("Unable to load projection right now. Please try again.")
		projectionService.EXPECT().FetchPerformance(gomock.Any(), userID, gomock.Any()).Return(&session, errors.New("boom"))

		w := doJson(t, router, http.MethodPost, "/projection", map[string]any{"userID": userID})
		require.Equal(t, 502, w.Code)
		require.Contains(t, w.Body.String(), "Unable to load projection")
	})

	t.Run("export", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		projectionService.EXPECT().GetSession(userID).Return(newSessionWithPerformance(userID))

		w := doJson(t, router, http.MethodGet, "/projection/"+userID.String()+"/export", nil)
		require.Equal(t, 200, w.Code)
		require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Equal(t, "date,label,portfolio,scenario,benchmark", lines[0])
		require.Equal(t, "2024-01-01,Jan 2024,1000,,", lines[1])
	})

	t.Run("export without projection", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		projectionService.EXPECT().GetSession(userID).Return(domain.NewPlanSession(userID))

		w := doJson(t, router, http.MethodGet, "/projection/"+userID.String()+"/export", nil)
		require.Equal(t, 404, w.Code)
	})

	t.Run("annualised returns", func(t *testing.T) {
		router, _, cache := newTestHandler(t)
		w := doJson(t, router, http.MethodGet, "/annualisedReturns/"+userID.String(), nil)
		require.Equal(t, 404, w.Code)

		require.NoError(t, cache.UpsertAnnualisedReturns(userID, domain.AnnualisedReturns{Nominal: util.FloatPointer(0.1)}))
		w = doJson(t, router, http.MethodGet, "/annualisedReturns/"+userID.String(), nil)
		require.Equal(t, 200, w.Code)
		require.JSONEq(t, `{"nominal": 0.1, "real": null}`, w.Body.String())
	})

	t.Run("custom rows", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		rows := []domain.WeightRow{{ID: "x", Symbol: "VTI", Weight: 70}}
		session := domain.NewPlanSession(userID)
		session.CustomRows = rows
		projectionService.EXPECT().UpdateCustomRows(userID, rows).Return(session)

		w := doJson(t, router, http.MethodPost, "/customRows", map[string]any{"userID": userID, "rows": rows})
		require.Equal(t, 200, w.Code)
		out := decode[rowsResponse](t, w)
		require.Equal(t, 30, out.WeightDelta)
		require.Equal(t, 70, out.TotalWeight)
	})

	t.Run("baseline rows", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		session := domain.NewPlanSession(userID)
		session.CustomRows = []domain.WeightRow{
			{ID: "BND-0", Symbol: "BND", Weight: 40},
			{ID: "VTI-1", Symbol: "VTI", Weight: 60},
		}
		projectionService.EXPECT().LoadBaselineRows(userID).Return(&session, nil)

		w := doJson(t, router, http.MethodPost, "/customRows/baseline", map[string]any{"userID": userID})
		require.Equal(t, 200, w.Code)
		out := decode[rowsResponse](t, w)
		require.Equal(t, "", cmp.Diff(session.CustomRows, out.Rows))
		require.Equal(t, 100, out.TotalWeight)
	})

	t.Run("baseline rows without an allocation", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		projectionService.EXPECT().LoadBaselineRows(userID).Return(nil, service.ErrNoBaselineAllocation)

		w := doJson(t, router, http.MethodPost, "/customRows/baseline", map[string]any{"userID": userID})
		require.Equal(t, 400, w.Code)
		require.JSONEq(t, `{"error": "No baseline allocation stored for this profile."}`, w.Body.String())
	})
}

func TestScenarioResolvers(t *testing.T) {
	userID := uuid.New()

	t.Run("run", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		draft := domain.ScenarioDraft{
			InitialDraft: "500",
			MonthlyDraft: "300",
			Mode:         domain.InvestmentMode_Monthly,
			Frequency:    domain.ContributionFrequency_Monthly,
		}
		session := newSessionWithPerformance(userID)
		session.ScenarioState = domain.ScenarioState_Enabled
		session.Scenario = draft
		session.ScenarioPerformance = &domain.PerformancePayload{
			Series: []domain.SeriesPoint{{Date: "2024-02-01", Value: domain.NewOptionalFloat(900)}},
		}
		projectionService.EXPECT().RunScenario(gomock.Any(), userID, draft).Return(&session, nil)

		w := doJson(t, router, http.MethodPost, "/scenario/run", map[string]any{"userID": userID, "draft": draft})
		require.Equal(t, 200, w.Code)

		out := map[string]any{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		datasets := out["chart"].(map[string]any)["datasets"].([]any)
		require.Len(t, datasets, 2)
		scenario := datasets[1].(map[string]any)
		require.Equal(t, "Scenario (Monthly debit order · R500 + R300/month)", scenario["label"])
		require.Equal(t, []any{nil, 900.0}, scenario["data"])
	})

	t.Run("run with invalid month", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		session := domain.NewPlanSession(userID)
		projectionService.EXPECT().RunScenario(gomock.Any(), userID, gomock.Any()).Return(&session, domain.ErrInvalidAnnualMonth)

		w := doJson(t, router, http.MethodPost, "/scenario/run", map[string]any{"userID": userID})
		require.Equal(t, 400, w.Code)
	})

	t.Run("reset", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		session := newSessionWithPerformance(userID)
		projectionService.EXPECT().ResetScenario(gomock.Any(), userID).Return(&session, nil)

		w := doJson(t, router, http.MethodPost, "/scenario/reset", map[string]any{"userID": userID})
		require.Equal(t, 200, w.Code)
	})

	t.Run("apply", func(t *testing.T) {
		router, projectionService, _ := newTestHandler(t)
		session := newSessionWithPerformance(userID)
		projectionService.EXPECT().ApplyScenarioToPlan(gomock.Any(), userID).Return(&session, nil)

		w := doJson(t, router, http.MethodPost, "/scenario/apply", map[string]any{"userID": userID})
		require.Equal(t, 200, w.Code)
	})
}
