package cmd

import (
	"context"
	"math"
	"time"

	"stockbuddy/internal/domain"
	"stockbuddy/internal/util"
	"stockbuddy/pkg/simulation"

	"github.com/google/uuid"
)

// UseMockSimulation as the simulation base url swaps in the in-process
// client below. it should not be used in prod
const UseMockSimulation = "mock"

const (
	mockAnnualReturn   = 0.07
	mockInflation      = 0.05
	mockDividendYield  = 0.02
	mockInitialBalance = 5000
)

var mockSeriesEnd = util.NewDate(2024, 12, 1)

var mockTimeframeMonths = map[string]int{
	"1y":  12,
	"3y":  36,
	"5y":  60,
	"10y": 120,
}

type mockSimulationClientHandler struct{}

// NewMockSimulationClient grows every plan at a fixed rate so the api
// can be exercised without the simulation service
func NewMockSimulationClient() simulation.Client {
	return mockSimulationClientHandler{}
}

func (h mockSimulationClientHandler) GetPortfolio(ctx context.Context, userID uuid.UUID) (*domain.PortfolioSummary, error) {
	return &domain.PortfolioSummary{
		Holdings: []domain.Holding{
			{Symbol: "VTI", Name: "Vanguard Total Stock Market", Weight: domain.NewOptionalFloat(0.6)},
			{Symbol: "VXUS", Name: "Vanguard Total International Stock", Weight: domain.NewOptionalFloat(0.25)},
			{Symbol: "BND", Name: "Vanguard Total Bond Market", Weight: domain.NewOptionalFloat(0.15)},
		},
		TotalValue:  domain.NewOptionalFloat(mockInitialBalance * 1.1),
		TotalCost:   domain.NewOptionalFloat(mockInitialBalance),
		TotalPnl:    domain.NewOptionalFloat(mockInitialBalance * 0.1),
		TotalPnlPct: domain.NewOptionalFloat(10),
	}, nil
}

func (h mockSimulationClientHandler) SimulatePerformance(ctx context.Context, req simulation.Request) (*simulation.Response, error) {
	start, months := mockRange(req)

	baseline := mockPayload(start, months, mockContributions{
		initial: req.InitialInvestment,
		amount:  req.MonthlyContribution,
		every:   mockEvery(req.InvestmentMode, nil),
		policy:  req.DistributionPolicy,
	})

	out := &simulation.Response{Baseline: baseline}
	if s := req.ContributionScenario; s != nil {
		scenario := mockPayload(start, months, mockContributions{
			initial:     s.InitialInvestment,
			amount:      s.MonthlyContribution,
			every:       mockEvery(s.InvestmentMode, s.ContributionFrequency),
			annualMonth: s.AnnualMonth,
			policy:      s.DistributionPolicy,
		})
		out.Scenario = &scenario
	}
	return out, nil
}

func mockRange(req simulation.Request) (time.Time, int) {
	if req.CustomStart != nil && req.CustomEnd != nil {
		start, errStart := time.Parse(time.DateOnly, *req.CustomStart)
		end, errEnd := time.Parse(time.DateOnly, *req.CustomEnd)
		if errStart == nil && errEnd == nil && !util.DateLte(end, start) {
			months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
			return util.NewDate(start.Year(), int(start.Month()), 1), months
		}
	}
	months, ok := mockTimeframeMonths[req.Timeframe]
	if req.CustomMonths != nil {
		months, ok = *req.CustomMonths, true
	}
	if !ok {
		months = domain.DefaultCustomMonths
	}
	return mockSeriesEnd.AddDate(0, -(months - 1), 0), months
}

// mockEvery is the number of months between contributions, 0 for none
func mockEvery(mode domain.InvestmentMode, freq *domain.ContributionFrequency) int {
	if mode != domain.InvestmentMode_Monthly {
		return 0
	}
	if freq == nil {
		return 1
	}
	switch *freq {
	case domain.ContributionFrequency_Quarterly:
		return 3
	case domain.ContributionFrequency_Annual:
		return 12
	}
	return 1
}

type mockContributions struct {
	initial     float64
	amount      float64
	every       int
	annualMonth *int
	policy      domain.DistributionPolicy
}

func (c mockContributions) due(i int, date time.Time) bool {
	if c.every == 0 || i == 0 {
		return false
	}
	if c.every == 12 && c.annualMonth != nil {
		return int(date.Month()) == *c.annualMonth
	}
	return i%c.every == 0
}

func mockPayload(start time.Time, months int, c mockContributions) domain.PerformancePayload {
	monthlyGrowth := math.Pow(1+mockAnnualReturn, 1.0/12) - 1
	monthlyInflation := math.Pow(1+mockInflation, 1.0/12) - 1
	monthlyDividend := mockDividendYield / 12

	value := c.initial
	invested := c.initial
	dividends := 0.0
	distributed := 0.0

	series := make([]domain.SeriesPoint, months)
	seriesReal := make([]domain.SeriesPoint, months)
	for i := 0; i < months; i++ {
		date := start.AddDate(0, i, 0)
		if i > 0 {
			value *= 1 + monthlyGrowth
			dividend := value * monthlyDividend
			dividends += dividend
			if c.policy == domain.DistributionPolicy_CashOut {
				distributed += dividend
			} else {
				value += dividend
			}
		}
		if c.due(i, date) {
			value += c.amount
			invested += c.amount
		}
		deflator := math.Pow(1+monthlyInflation, float64(i))
		series[i] = domain.SeriesPoint{Date: util.DateKey(date), Value: domain.NewOptionalFloat(value)}
		seriesReal[i] = domain.SeriesPoint{Date: util.DateKey(date), Value: domain.NewOptionalFloat(value / deflator)}
	}

	years := math.Max(float64(months-1)/12, 1.0/12)
	endingReal := value / math.Pow(1+monthlyInflation, float64(months-1))
	endingValue := value + distributed

	out := domain.PerformancePayload{
		Series:               series,
		SeriesReal:           seriesReal,
		TotalInvested:        domain.NewOptionalFloat(invested),
		TotalDividends:       domain.NewOptionalFloat(dividends),
		DividendsDistributed: domain.NewOptionalFloat(distributed),
		EndingValue:          domain.NewOptionalFloat(endingValue),
		EndingValueHoldings:  domain.NewOptionalFloat(value),
		TotalReturn:          domain.NewOptionalFloat(endingValue - invested),
		TotalReturnReal:      domain.NewOptionalFloat(endingReal + distributed - invested),
		AverageDividendYield: domain.NewOptionalFloat(mockDividendYield),
		DistributionPolicy:   c.policy,
	}
	if invested > 0 && endingValue > 0 {
		out.AnnualReturn = domain.NewOptionalFloat(math.Pow(endingValue/invested, 1/years) - 1)
		out.AnnualReturnReal = domain.NewOptionalFloat(math.Pow((endingReal+distributed)/invested, 1/years) - 1)
	}
	return out
}
