package domain

import (
	"errors"
	"time"
)

var ErrInvalidCustomRange = errors.New("end date must be after start date")

const (
	DefaultTimeframe           = "5y"
	DefaultInitialInvestment   = 1000
	DefaultMonthlyContribution = 300
	DefaultCustomMonths        = 60
	MaxCustomMonths            = 360
	TimeframeCustom            = "custom"
)

// PlanInputs are the baseline projection inputs the user controls
type PlanInputs struct {
	Timeframe           string             `json:"timeframe"`
	InvestmentMode      InvestmentMode     `json:"investmentMode"`
	InitialInvestment   float64            `json:"initialInvestment"`
	MonthlyContribution float64            `json:"monthlyContribution"`
	CustomMonths        int                `json:"customMonths"`
	CustomStart         string             `json:"customStart,omitempty"`
	CustomEnd           string             `json:"customEnd,omitempty"`
	Benchmark           string             `json:"benchmark,omitempty"`
	InflationAdjust     bool               `json:"inflationAdjust"`
	DistributionPolicy  DistributionPolicy `json:"distributionPolicy"`
}

func NewDefaultPlanInputs() PlanInputs {
	return PlanInputs{
		Timeframe:           DefaultTimeframe,
		InvestmentMode:      InvestmentMode_LumpSum,
		InitialInvestment:   DefaultInitialInvestment,
		MonthlyContribution: DefaultMonthlyContribution,
		CustomMonths:        DefaultCustomMonths,
		DistributionPolicy:  DistributionPolicy_Reinvest,
	}
}

// CacheKey is the six field subset used to decide whether a stored
// payload can be reused
func (p PlanInputs) CacheKey() PerformanceInputs {
	return PerformanceInputs{
		Timeframe:           p.Timeframe,
		InvestmentMode:      p.InvestmentMode,
		InitialInvestment:   p.InitialInvestment,
		MonthlyContribution: p.MonthlyContribution,
		InflationAdjust:     p.InflationAdjust,
		DistributionPolicy:  p.DistributionPolicy,
	}
}

// ResolveCustomMonths validates a custom timeframe and returns the
// bounded number of months it spans. start and end are inclusive
// calendar months, so jan -> mar is 3
func (p PlanInputs) ResolveCustomMonths() (int, error) {
	if p.Timeframe != TimeframeCustom {
		return p.CustomMonths, nil
	}
	if p.CustomStart == "" || p.CustomEnd == "" {
		return boundMonths(p.CustomMonths), nil
	}
	start, err := time.Parse(time.DateOnly, p.CustomStart)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse(time.DateOnly, p.CustomEnd)
	if err != nil {
		return 0, err
	}
	if !end.After(start) {
		return 0, ErrInvalidCustomRange
	}
	monthsDiff := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	return boundMonths(monthsDiff), nil
}

func boundMonths(m int) int {
	if m < 1 {
		return 1
	}
	if m > MaxCustomMonths {
		return MaxCustomMonths
	}
	return m
}
