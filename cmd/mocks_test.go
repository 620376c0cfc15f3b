package cmd

import (
	"context"
	"testing"

	"stockbuddy/internal/domain"
	"stockbuddy/pkg/simulation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMockSimulationClient(t *testing.T) {
	client := NewMockSimulationClient()
	ctx := context.Background()

	t.Run("lump sum", func(t *testing.T) {
		req, err := simulation.NewRequest(uuid.New(), domain.NewDefaultPlanInputs(), nil)
		require.NoError(t, err)

		out, err := client.SimulatePerformance(ctx, req)
		require.NoError(t, err)
		require.Nil(t, out.Scenario)
		require.Len(t, out.Baseline.Series, 60)
		require.Equal(t, "2024-12-01", out.Baseline.Series[59].Date)
		require.Equal(t, 1000.0, out.Baseline.TotalInvested.Value)
		require.Greater(t, out.Baseline.EndingValue.Value, 1000.0)
		require.Less(t, out.Baseline.SeriesReal[59].Value.Value, out.Baseline.Series[59].Value.Value)
	})

	t.Run("annual scenario", func(t *testing.T) {
		plan := domain.NewDefaultPlanInputs()
		plan.Timeframe = "1y"
		draft := domain.ScenarioDraft{
			InitialDraft: "0",
			MonthlyDraft: "1200",
			Mode:         domain.InvestmentMode_Monthly,
			Policy:       domain.DistributionPolicy_CashOut,
			Frequency:    domain.ContributionFrequency_Annual,
			AnnualMonth:  "6",
		}
		scenario := draft.ToRequest(plan)
		req, err := simulation.NewRequest(uuid.New(), plan, &scenario)
		require.NoError(t, err)

		out, err := client.SimulatePerformance(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, out.Scenario)
		require.Equal(t, 1200.0, out.Scenario.TotalInvested.Value)
		require.Equal(t, domain.DistributionPolicy_CashOut, out.Scenario.DistributionPolicy)
		require.Greater(t, out.Scenario.DividendsDistributed.Value, 0.0)
	})

	t.Run("custom dates", func(t *testing.T) {
		plan := domain.NewDefaultPlanInputs()
		plan.Timeframe = domain.TimeframeCustom
		plan.CustomStart = "2020-01-10"
		plan.CustomEnd = "2020-06-01"
		req, err := simulation.NewRequest(uuid.New(), plan, nil)
		require.NoError(t, err)

		out, err := client.SimulatePerformance(ctx, req)
		require.NoError(t, err)
		require.Len(t, out.Baseline.Series, 6)
		require.Equal(t, "2020-01-01", out.Baseline.Series[0].Date)
	})
}
