package domain

import (
	"bytes"
	"encoding/json"
	"math"
)

type DistributionPolicy string

const (
	DistributionPolicy_Reinvest DistributionPolicy = "reinvest"
	DistributionPolicy_CashOut  DistributionPolicy = "cash_out"
)

func (p DistributionPolicy) IsValid() bool {
	return p == DistributionPolicy_Reinvest || p == DistributionPolicy_CashOut
}

type InvestmentMode string

const (
	InvestmentMode_LumpSum InvestmentMode = "lump_sum"
	InvestmentMode_Monthly InvestmentMode = "monthly"
)

func (m InvestmentMode) IsValid() bool {
	return m == InvestmentMode_LumpSum || m == InvestmentMode_Monthly
}

type ContributionFrequency string

const (
	ContributionFrequency_Monthly   ContributionFrequency = "monthly"
	ContributionFrequency_Quarterly ContributionFrequency = "quarterly"
	ContributionFrequency_Annual    ContributionFrequency = "annual"
)

// OptionalFloat is a nullable number read from a loosely typed
// payload. anything that is not a finite JSON number is treated as
// absent instead of failing the whole decode
type OptionalFloat struct {
	Value float64
	Valid bool
}

func NewOptionalFloat(f float64) OptionalFloat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return OptionalFloat{}
	}
	return OptionalFloat{Value: f, Valid: true}
}

// Or returns the value when present, fallback otherwise
func (o OptionalFloat) Or(fallback float64) float64 {
	if o.Valid {
		return o.Value
	}
	return fallback
}

func (o OptionalFloat) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	*o = OptionalFloat{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == 'n' || trimmed[0] == '"' || trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == 't' || trimmed[0] == 'f' {
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil
	}
	*o = NewOptionalFloat(f)
	return nil
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

type SeriesPoint struct {
	Date  string        `json:"date"`
	Value OptionalFloat `json:"value"`
}

// PerformanceInputs are the request fields echoed back on a stored
// payload. a cached payload is only reusable when all six match
type PerformanceInputs struct {
	Timeframe           string             `json:"timeframe"`
	InvestmentMode      InvestmentMode     `json:"investment_mode"`
	InitialInvestment   float64            `json:"initial_investment"`
	MonthlyContribution float64            `json:"monthly_contribution"`
	InflationAdjust     bool               `json:"inflation_adjust"`
	DistributionPolicy  DistributionPolicy `json:"distribution_policy"`
}

// Matches is a strict equality check, no tolerance and no expiry
func (in PerformanceInputs) Matches(other PerformanceInputs) bool {
	return in.Timeframe == other.Timeframe &&
		in.InvestmentMode == other.InvestmentMode &&
		in.InitialInvestment == other.InitialInvestment &&
		in.MonthlyContribution == other.MonthlyContribution &&
		in.InflationAdjust == other.InflationAdjust &&
		in.DistributionPolicy == other.DistributionPolicy
}

// PerformancePayload is the simulation response. every scalar is
// optional; defaults are applied by the calculator, not here
type PerformancePayload struct {
	Series          []SeriesPoint `json:"series"`
	SeriesReal      []SeriesPoint `json:"series_real,omitempty"`
	BenchmarkSeries []SeriesPoint `json:"benchmark_series,omitempty"`
	BenchmarkLabel  string        `json:"benchmark_label,omitempty"`

	TotalInvested        OptionalFloat `json:"total_invested"`
	TotalDividends       OptionalFloat `json:"total_dividends"`
	DividendsDistributed OptionalFloat `json:"dividends_distributed"`
	AnnualReturn         OptionalFloat `json:"annual_return"`
	AnnualReturnReal     OptionalFloat `json:"annual_return_real"`
	EndingValue          OptionalFloat `json:"ending_value"`
	EndingValueHoldings  OptionalFloat `json:"ending_value_holdings"`
	TotalReturn          OptionalFloat `json:"total_return"`
	TotalReturnReal      OptionalFloat `json:"total_return_real"`
	AverageDividendYield OptionalFloat `json:"average_dividend_yield"`

	DistributionPolicy DistributionPolicy `json:"distribution_policy"`

	Inputs *PerformanceInputs `json:"__inputs,omitempty"`
}

// MetricsRecord is derived from a payload and replaced wholesale on
// every payload arrival or view option change
type MetricsRecord struct {
	TotalValue           float64            `json:"totalValue"`
	TotalInvested        float64            `json:"totalInvested"`
	TotalReturn          float64            `json:"totalReturn"`
	TotalReturnPct       float64            `json:"totalReturnPct"`
	TotalDividends       float64            `json:"totalDividends"`
	DividendsDistributed float64            `json:"dividendsDistributed"`
	AverageDividendYield *float64           `json:"averageDividendYield"`
	HoldingsValue        float64            `json:"holdingsValue"`
	DistributionPolicy   DistributionPolicy `json:"distributionPolicy"`
}

// AnnualisedReturns are persisted next to the cached payload so other
// pages can read the latest projection without refetching
type AnnualisedReturns struct {
	Nominal *float64 `json:"nominal"`
	Real    *float64 `json:"real"`
}
