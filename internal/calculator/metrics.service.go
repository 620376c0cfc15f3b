package calculator

import (
	"math"

	"stockbuddy/internal/domain"

	"github.com/shopspring/decimal"
)

// ComputeMetrics derives the headline numbers for a simulation payload.
// a nil payload gives nil metrics, and callers fall back to the last
// known portfolio totals. malformed fields degrade to 0 or nil
func ComputeMetrics(payload *domain.PerformancePayload, inflationAdjust bool, fallback domain.DistributionPolicy) *domain.MetricsRecord {
	if payload == nil {
		return nil
	}

	policy := fallback
	if payload.DistributionPolicy.IsValid() {
		policy = payload.DistributionPolicy
	}

	holdingsValue := payload.EndingValueHoldings.Or(payload.EndingValue.Or(0))
	netEndingValue := payload.EndingValue.Or(holdingsValue)

	// the real ending value comes off the plotted line so the headline
	// number and the chart always agree
	endingDisplay := netEndingValue
	if inflationAdjust && len(payload.SeriesReal) > 0 {
		endingDisplay = payload.SeriesReal[len(payload.SeriesReal)-1].Value.Or(netEndingValue)
	}

	effectiveReturn := payload.TotalReturn.Or(0)
	if inflationAdjust && payload.TotalReturnReal.Valid {
		effectiveReturn = payload.TotalReturnReal.Value
	}

	invested := payload.TotalInvested.Or(0)

	return &domain.MetricsRecord{
		TotalValue:           endingDisplay,
		TotalInvested:        invested,
		TotalReturn:          effectiveReturn,
		TotalReturnPct:       returnPct(effectiveReturn, invested),
		TotalDividends:       payload.TotalDividends.Or(0),
		DividendsDistributed: payload.DividendsDistributed.Or(0),
		AverageDividendYield: payload.AverageDividendYield.Ptr(),
		HoldingsValue:        holdingsValue,
		DistributionPolicy:   policy,
	}
}

// returnPct floors the denominator at 1 so a zero invested amount
// cannot blow up the percentage
func returnPct(totalReturn, invested float64) float64 {
	denominator := math.Max(invested, 1)
	pct := decimal.NewFromFloat(totalReturn).
		Div(decimal.NewFromFloat(denominator)).
		Mul(decimal.NewFromInt(100))
	return pct.InexactFloat64()
}

// FallbackMetrics builds a record from the portfolio totals. used until
// the first projection arrives
func FallbackMetrics(summary domain.PortfolioSummary, policy domain.DistributionPolicy) *domain.MetricsRecord {
	return &domain.MetricsRecord{
		TotalValue:           summary.TotalValue.Or(0),
		TotalInvested:        summary.TotalCost.Or(0),
		TotalReturn:          summary.TotalPnl.Or(0),
		TotalReturnPct:       summary.TotalPnlPct.Or(0),
		TotalDividends:       0,
		DividendsDistributed: 0,
		AverageDividendYield: nil,
		HoldingsValue:        summary.TotalValue.Or(0),
		DistributionPolicy:   policy,
	}
}

func ResolveMetrics(metrics *domain.MetricsRecord, summary *domain.PortfolioSummary, policy domain.DistributionPolicy) *domain.MetricsRecord {
	if metrics != nil {
		return metrics
	}
	if summary == nil {
		return nil
	}
	return FallbackMetrics(*summary, policy)
}

// SelectSeries picks the line to plot. the real series only wins when
// it was requested and actually has points
func SelectSeries(payload *domain.PerformancePayload, inflationAdjust bool) []domain.SeriesPoint {
	if payload == nil {
		return []domain.SeriesPoint{}
	}
	if inflationAdjust && len(payload.SeriesReal) > 0 {
		return payload.SeriesReal
	}
	if payload.Series == nil {
		return []domain.SeriesPoint{}
	}
	return payload.Series
}

// AnnualisedReturnsFrom reads the returns persisted next to the cache
func AnnualisedReturnsFrom(payload *domain.PerformancePayload) domain.AnnualisedReturns {
	if payload == nil {
		return domain.AnnualisedReturns{}
	}
	return domain.AnnualisedReturns{
		Nominal: payload.AnnualReturn.Ptr(),
		Real:    payload.AnnualReturnReal.Ptr(),
	}
}
