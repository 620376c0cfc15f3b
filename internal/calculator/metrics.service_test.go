package calculator

import (
	"encoding/json"
	"testing"

	"stockbuddy/internal/domain"
	"stockbuddy/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func payloadFromJson(t *testing.T, raw string) *domain.PerformancePayload {
	t.Helper()
	payload := domain.PerformancePayload{}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return &payload
}

func TestComputeMetrics(t *testing.T) {
	t.Run("nil payload", func(t *testing.T) {
		require.Nil(t, ComputeMetrics(nil, false, domain.DistributionPolicy_Reinvest))
	})

	t.Run("happy path", func(t *testing.T) {
		payload := payloadFromJson(t, `{
			"series": [{"date": "2024-01-01", "value": 10000}, {"date": "2024-02-01", "value": 12500}],
			"total_invested": 10000,
			"total_return": 2500,
			"ending_value": 12500,
			"total_dividends": 320.5,
			"dividends_distributed": 0,
			"average_dividend_yield": 2.1,
			"distribution_policy": "reinvest"
		}`)
		out := ComputeMetrics(payload, false, domain.DistributionPolicy_CashOut)
		require.Equal(t, "", cmp.Diff(&domain.MetricsRecord{
			TotalValue:           12500,
			TotalInvested:        10000,
			TotalReturn:          2500,
			TotalReturnPct:       25,
			TotalDividends:       320.5,
			DividendsDistributed: 0,
			AverageDividendYield: util.FloatPointer(2.1),
			HoldingsValue:        12500,
			DistributionPolicy:   domain.DistributionPolicy_Reinvest,
		}, out))
	})

	t.Run("real ending value comes from the series tail", func(t *testing.T) {
		payload := payloadFromJson(t, `{
			"series": [{"date": "2024-01-01", "value": 100000}, {"date": "2025-01-01", "value": 150000}],
			"series_real": [{"date": "2024-01-01", "value": 100000}, {"date": "2025-01-01", "value": 120000}],
			"total_invested": 100000,
			"total_return": 50000,
			"total_return_real": 20000,
			"ending_value": 150000
		}`)
		out := ComputeMetrics(payload, true, domain.DistributionPolicy_Reinvest)
		require.Equal(t, 120000.0, out.TotalValue)
		require.Equal(t, 20000.0, out.TotalReturn)
		require.Equal(t, 20.0, out.TotalReturnPct)
		require.Equal(t, 150000.0, out.HoldingsValue)

		nominal := ComputeMetrics(payload, false, domain.DistributionPolicy_Reinvest)
		require.Equal(t, 150000.0, nominal.TotalValue)
		require.Equal(t, 50000.0, nominal.TotalReturn)
	})

	t.Run("real series tail without a value", func(t *testing.T) {
		payload := payloadFromJson(t, `{
			"series": [{"date": "2024-01-01", "value": 1}],
			"series_real": [{"date": "2024-01-01", "value": null}],
			"ending_value": 900,
			"total_return": 40
		}`)
		out := ComputeMetrics(payload, true, domain.DistributionPolicy_Reinvest)
		require.Equal(t, 900.0, out.TotalValue)
		require.Equal(t, 40.0, out.TotalReturn)
	})

	t.Run("cash out keeps holdings separate", func(t *testing.T) {
		payload := payloadFromJson(t, `{
			"series": [],
			"total_invested": 10000,
			"ending_value": 12500,
			"ending_value_holdings": 11000,
			"dividends_distributed": 1500,
			"total_return": 2500,
			"distribution_policy": "cash_out"
		}`)
		out := ComputeMetrics(payload, false, domain.DistributionPolicy_Reinvest)
		require.Equal(t, 12500.0, out.TotalValue)
		require.Equal(t, 11000.0, out.HoldingsValue)
		require.Equal(t, 1500.0, out.DividendsDistributed)
		require.Equal(t, domain.DistributionPolicy_CashOut, out.DistributionPolicy)
	})

	t.Run("holdings only ending value", func(t *testing.T) {
		payload := payloadFromJson(t, `{"ending_value_holdings": 800}`)
		out := ComputeMetrics(payload, false, domain.DistributionPolicy_Reinvest)
		require.Equal(t, 800.0, out.TotalValue)
		require.Equal(t, 800.0, out.HoldingsValue)
	})

	t.Run("unknown policy uses fallback", func(t *testing.T) {
		payload := payloadFromJson(t, `{"distribution_policy": "sometimes"}`)
		out := ComputeMetrics(payload, false, domain.DistributionPolicy_CashOut)
		require.Equal(t, domain.DistributionPolicy_CashOut, out.DistributionPolicy)
	})

	t.Run("zero invested floors the denominator", func(t *testing.T) {
		payload := payloadFromJson(t, `{"total_invested": 0, "total_return": 3}`)
		out := ComputeMetrics(payload, false, domain.DistributionPolicy_Reinvest)
		require.Equal(t, 300.0, out.TotalReturnPct)
	})

	t.Run("malformed fields degrade to defaults", func(t *testing.T) {
		payload := payloadFromJson(t, `{
			"series": [{"date": "2024-01-01", "value": "oops"}],
			"total_invested": "10000",
			"total_return": {"value": 1},
			"ending_value": null,
			"total_dividends": true,
			"average_dividend_yield": "n/a"
		}`)
		out := ComputeMetrics(payload, true, domain.DistributionPolicy_Reinvest)
		require.Equal(t, "", cmp.Diff(&domain.MetricsRecord{
			DistributionPolicy: domain.DistributionPolicy_Reinvest,
		}, out))
	})
}

func TestResolveMetrics(t *testing.T) {
	summary := &domain.PortfolioSummary{
		TotalValue:  domain.NewOptionalFloat(5200),
		TotalCost:   domain.NewOptionalFloat(5000),
		TotalPnl:    domain.NewOptionalFloat(200),
		TotalPnlPct: domain.NewOptionalFloat(4),
	}

	t.Run("fallback to portfolio totals", func(t *testing.T) {
		out := ResolveMetrics(nil, summary, domain.DistributionPolicy_CashOut)
		require.Equal(t, "", cmp.Diff(&domain.MetricsRecord{
			TotalValue:         5200,
			TotalInvested:      5000,
			TotalReturn:        200,
			TotalReturnPct:     4,
			HoldingsValue:      5200,
			DistributionPolicy: domain.DistributionPolicy_CashOut,
		}, out))
	})

	t.Run("metrics win", func(t *testing.T) {
		metrics := &domain.MetricsRecord{TotalValue: 1}
		require.Same(t, metrics, ResolveMetrics(metrics, summary, domain.DistributionPolicy_Reinvest))
	})

	t.Run("nothing known", func(t *testing.T) {
		require.Nil(t, ResolveMetrics(nil, nil, domain.DistributionPolicy_Reinvest))
	})
}

func TestSelectSeries(t *testing.T) {
	payload := payloadFromJson(t, `{
		"series": [{"date": "2024-01-01", "value": 1}],
		"series_real": [{"date": "2024-01-01", "value": 2}]
	}`)
	require.Equal(t, 2.0, SelectSeries(payload, true)[0].Value.Value)
	require.Equal(t, 1.0, SelectSeries(payload, false)[0].Value.Value)

	payload.SeriesReal = nil
	require.Equal(t, 1.0, SelectSeries(payload, true)[0].Value.Value)
	require.Empty(t, SelectSeries(nil, true))
}

func TestAnnualisedReturnsFrom(t *testing.T) {
	payload := payloadFromJson(t, `{"annual_return": 0.08}`)
	out := AnnualisedReturnsFrom(payload)
	require.Equal(t, "", cmp.Diff(domain.AnnualisedReturns{Nominal: util.FloatPointer(0.08)}, out))
}
