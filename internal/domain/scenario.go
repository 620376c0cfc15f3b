package domain

import (
	"errors"
	"strconv"

	"stockbuddy/internal/util"

	"github.com/google/uuid"
)

var ErrInvalidAnnualMonth = errors.New("select the month you receive your annual contribution")

const (
	ScenarioMessage_NotGenerated       = "Scenario could not be generated with the current settings."
	ScenarioMessage_LoadFailed         = "Unable to load scenario right now. Please try again."
	ScenarioMessage_InvalidAnnualMonth = "Select the month you receive your annual contribution."
)

type ScenarioState string

const (
	ScenarioState_Disabled ScenarioState = "disabled"
	ScenarioState_Enabled  ScenarioState = "enabled"
)

// ScenarioDraft holds the comparison plan as the user typed it.
// amounts stay as text until the scenario is run or applied
type ScenarioDraft struct {
	InitialDraft string                `json:"initialDraft"`
	MonthlyDraft string                `json:"monthlyDraft"`
	Mode         InvestmentMode        `json:"mode"`
	Policy       DistributionPolicy    `json:"policy"`
	Frequency    ContributionFrequency `json:"frequency"`
	AnnualMonth  string                `json:"annualMonth"`
}

func (d ScenarioDraft) ParsedInitial(fallback float64) float64 {
	return util.RoundHalfUp(util.ParseNumericInput(d.InitialDraft, fallback))
}

// ParsedMonthly is 0 for lump sum scenarios
func (d ScenarioDraft) ParsedMonthly(fallback float64) float64 {
	if d.Mode != InvestmentMode_Monthly {
		return 0
	}
	return util.RoundHalfUp(util.ParseNumericInput(d.MonthlyDraft, fallback))
}

func (d ScenarioDraft) annualMonth() (int, bool) {
	m, err := strconv.Atoi(d.AnnualMonth)
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}

func (d ScenarioDraft) Validate() error {
	if d.Mode == InvestmentMode_Monthly && d.Frequency == ContributionFrequency_Annual {
		if _, ok := d.annualMonth(); !ok {
			return ErrInvalidAnnualMonth
		}
	}
	return nil
}

// ScenarioRequest is the contribution_scenario block sent along with
// the baseline request
type ScenarioRequest struct {
	InitialInvestment     float64                `json:"initial_investment"`
	MonthlyContribution   float64                `json:"monthly_contribution"`
	InvestmentMode        InvestmentMode         `json:"investment_mode"`
	DistributionPolicy    DistributionPolicy     `json:"distribution_policy"`
	ContributionFrequency *ContributionFrequency `json:"contribution_frequency,omitempty"`
	AnnualMonth           *int                   `json:"annual_month,omitempty"`
}

func (d ScenarioDraft) ToRequest(plan PlanInputs) ScenarioRequest {
	req := ScenarioRequest{
		InitialInvestment:   d.ParsedInitial(plan.InitialInvestment),
		MonthlyContribution: d.ParsedMonthly(plan.MonthlyContribution),
		InvestmentMode:      d.Mode,
		DistributionPolicy:  d.Policy,
	}
	if d.Mode == InvestmentMode_Monthly {
		freq := d.Frequency
		if freq == "" {
			freq = ContributionFrequency_Monthly
		}
		req.ContributionFrequency = &freq
		if freq == ContributionFrequency_Annual {
			if m, ok := d.annualMonth(); ok {
				req.AnnualMonth = &m
			}
		}
	}
	return req
}

// PlanSession is the per user projection state. transitions return a
// new session and never mutate the receiver
type PlanSession struct {
	UserID                  uuid.UUID     `json:"userID"`
	Plan                    PlanInputs    `json:"plan"`
	LastMonthlyContribution float64       `json:"lastMonthlyContribution"`
	Scenario                ScenarioDraft `json:"scenario"`
	ScenarioState           ScenarioState `json:"scenarioState"`

	Holdings   []WeightRow       `json:"holdings"`
	CustomRows []WeightRow       `json:"customRows"`
	Portfolio  *PortfolioSummary `json:"-"`

	Performance         *PerformancePayload `json:"-"`
	ScenarioPerformance *PerformancePayload `json:"-"`
	Metrics             *MetricsRecord      `json:"metrics"`
	ScenarioMetrics     *MetricsRecord      `json:"scenarioMetrics"`
	ScenarioMessage     *string             `json:"scenarioMessage"`
	ProjectionError     *string             `json:"projectionError"`

	// RequestSeq is bumped for every simulation request; only the
	// response carrying the latest value may be applied
	RequestSeq uint64 `json:"-"`
}

func NewPlanSession(userID uuid.UUID) PlanSession {
	plan := NewDefaultPlanInputs()
	s := PlanSession{
		UserID:                  userID,
		Plan:                    plan,
		LastMonthlyContribution: plan.MonthlyContribution,
		ScenarioState:           ScenarioState_Disabled,
	}
	return s.SyncScenarioDraft()
}

func (s PlanSession) ScenarioEnabled() bool {
	return s.ScenarioState == ScenarioState_Enabled
}

// SyncScenarioDraft makes a disabled scenario mirror the plan, so
// opening the comparison starts from the current inputs
func (s PlanSession) SyncScenarioDraft() PlanSession {
	if s.ScenarioEnabled() {
		return s
	}
	monthly := s.LastMonthlyContribution
	if s.Plan.InvestmentMode == InvestmentMode_Monthly {
		monthly = s.Plan.MonthlyContribution
	}
	s.Scenario = ScenarioDraft{
		InitialDraft: formatAmount(s.Plan.InitialInvestment),
		MonthlyDraft: formatAmount(monthly),
		Mode:         s.Plan.InvestmentMode,
		Policy:       s.Plan.DistributionPolicy,
		Frequency:    ContributionFrequency_Monthly,
		AnnualMonth:  "12",
	}
	return s
}

// RunScenario moves disabled -> enabled. an invalid draft leaves the
// state untouched and sets the scenario message
func (s PlanSession) RunScenario(draft ScenarioDraft) (PlanSession, error) {
	s.Scenario = draft
	if err := draft.Validate(); err != nil {
		msg := ScenarioMessage_InvalidAnnualMonth
		s.ScenarioMessage = &msg
		return s, err
	}
	s.ScenarioState = ScenarioState_Enabled
	s.ScenarioMessage = nil
	return s, nil
}

// ResetScenario moves back to disabled and discards the draft
func (s PlanSession) ResetScenario() PlanSession {
	return s.disableScenario().SyncScenarioDraft()
}

// ApplyScenarioToPlan promotes the scenario inputs into the baseline
// plan and disables the comparison
func (s PlanSession) ApplyScenarioToPlan() PlanSession {
	d := s.Scenario
	s.Plan.InitialInvestment = d.ParsedInitial(s.Plan.InitialInvestment)
	if d.Mode == InvestmentMode_Monthly {
		monthly := d.ParsedMonthly(s.Plan.MonthlyContribution)
		s.LastMonthlyContribution = monthly
		s.Plan.MonthlyContribution = monthly
	} else {
		s.Plan.MonthlyContribution = 0
	}
	if d.Mode.IsValid() {
		s.Plan.InvestmentMode = d.Mode
	}
	if d.Policy.IsValid() {
		s.Plan.DistributionPolicy = d.Policy
	}
	return s.disableScenario().SyncScenarioDraft()
}

func (s PlanSession) disableScenario() PlanSession {
	s.ScenarioState = ScenarioState_Disabled
	s.ScenarioPerformance = nil
	s.ScenarioMetrics = nil
	s.ScenarioMessage = nil
	return s
}

// WithPlan replaces the plan inputs. amounts are rounded to whole rand,
// and a positive monthly amount is remembered so switching back from
// lump sum restores it. an invalid custom range leaves the plan as is
func (s PlanSession) WithPlan(plan PlanInputs) (PlanSession, error) {
	plan.InitialInvestment = wholeAmount(plan.InitialInvestment)
	monthly := wholeAmount(plan.MonthlyContribution)
	if monthly > 0 {
		s.LastMonthlyContribution = monthly
	}
	if plan.InvestmentMode == InvestmentMode_Monthly {
		plan.MonthlyContribution = monthly
	} else {
		plan.InvestmentMode = InvestmentMode_LumpSum
		plan.MonthlyContribution = 0
	}
	if !plan.DistributionPolicy.IsValid() {
		plan.DistributionPolicy = DistributionPolicy_Reinvest
	}
	if plan.Timeframe == "" {
		plan.Timeframe = DefaultTimeframe
	}

	if plan.Timeframe == TimeframeCustom {
		months, err := plan.ResolveCustomMonths()
		if err != nil {
			msg := "End date must be after start date."
			if !errors.Is(err, ErrInvalidCustomRange) {
				msg = "Enter valid custom start and end dates."
			}
			s.ProjectionError = &msg
			return s, err
		}
		plan.CustomMonths = months
	}

	s.ProjectionError = nil
	s.Plan = plan
	return s.SyncScenarioDraft(), nil
}

func wholeAmount(f float64) float64 {
	if !util.IsFinite(f) || f <= 0 {
		return 0
	}
	return util.RoundHalfUp(f)
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
