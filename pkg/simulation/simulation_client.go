package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stockbuddy/internal/domain"
	"stockbuddy/internal/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

const (
	performancePath   = "/api/simulate/performance"
	portfolioPathFmt  = "/api/portfolio/%s"
	defaultMaxTries   = 3
	defaultRetryDelay = 250 * time.Millisecond
)

// Client talks to the service that owns portfolios and runs the
// return simulations
type Client interface {
	SimulatePerformance(ctx context.Context, req Request) (*Response, error)
	GetPortfolio(ctx context.Context, userID uuid.UUID) (*domain.PortfolioSummary, error)
}

type Config struct {
	BaseUrl    string
	HttpClient *http.Client
	MaxTries   uint
	RetryDelay time.Duration
}

type clientHandler struct {
	BaseUrl    string
	HttpClient *http.Client
	MaxTries   uint
	RetryDelay time.Duration
}

func NewClient(cfg Config) Client {
	h := clientHandler{
		BaseUrl:    strings.TrimRight(cfg.BaseUrl, "/"),
		HttpClient: cfg.HttpClient,
		MaxTries:   cfg.MaxTries,
		RetryDelay: cfg.RetryDelay,
	}
	if h.HttpClient == nil {
		h.HttpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if h.MaxTries == 0 {
		h.MaxTries = defaultMaxTries
	}
	if h.RetryDelay == 0 {
		h.RetryDelay = defaultRetryDelay
	}
	return h
}

type Request struct {
	UserID               uuid.UUID                 `json:"user_id"`
	Timeframe            string                    `json:"timeframe"`
	InvestmentMode       domain.InvestmentMode     `json:"investment_mode"`
	InitialInvestment    float64                   `json:"initial_investment"`
	MonthlyContribution  float64                   `json:"monthly_contribution"`
	CustomStart          *string                   `json:"custom_start,omitempty"`
	CustomEnd            *string                   `json:"custom_end,omitempty"`
	CustomMonths         *int                      `json:"custom_months,omitempty"`
	Benchmark            *string                   `json:"benchmark"`
	InflationAdjust      bool                      `json:"inflation_adjust"`
	DistributionPolicy   domain.DistributionPolicy `json:"distribution_policy"`
	ContributionScenario *domain.ScenarioRequest   `json:"contribution_scenario,omitempty"`
}

// NewRequest builds the request body for a plan. a custom timeframe
// sends explicit dates when both are set, otherwise a month count
func NewRequest(userID uuid.UUID, plan domain.PlanInputs, scenario *domain.ScenarioRequest) (Request, error) {
	req := Request{
		UserID:               userID,
		Timeframe:            plan.Timeframe,
		InvestmentMode:       plan.InvestmentMode,
		InitialInvestment:    plan.InitialInvestment,
		MonthlyContribution:  plan.MonthlyContribution,
		InflationAdjust:      plan.InflationAdjust,
		DistributionPolicy:   plan.DistributionPolicy,
		ContributionScenario: scenario,
	}
	if plan.Benchmark != "" {
		benchmark := plan.Benchmark
		req.Benchmark = &benchmark
	}

	if plan.Timeframe == domain.TimeframeCustom {
		months, err := plan.ResolveCustomMonths()
		if err != nil {
			return Request{}, fmt.Errorf("failed to resolve custom timeframe: %w", err)
		}
		if plan.CustomStart != "" && plan.CustomEnd != "" {
			start, end := plan.CustomStart, plan.CustomEnd
			req.CustomStart = &start
			req.CustomEnd = &end
		} else {
			req.CustomMonths = &months
		}
	}

	return req, nil
}

// Response holds the baseline payload and, when one was requested and
// could be generated, the scenario payload
type Response struct {
	Baseline domain.PerformancePayload
	Scenario *domain.PerformancePayload
}

type wrappedResponse struct {
	Baseline *domain.PerformancePayload `json:"baseline"`
	Scenario *domain.PerformancePayload `json:"scenario"`
}

// DecodeResponse accepts either a bare payload or a
// {baseline, scenario} envelope
func DecodeResponse(body []byte) (*Response, error) {
	wrapped := wrappedResponse{}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode simulation response: %w", err)
	}
	if wrapped.Baseline != nil {
		return &Response{
			Baseline: *wrapped.Baseline,
			Scenario: wrapped.Scenario,
		}, nil
	}

	flat := domain.PerformancePayload{}
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode simulation response: %w", err)
	}
	return &Response{Baseline: flat}, nil
}

func (h clientHandler) SimulatePerformance(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal simulation request: %w", err)
	}

	responseBytes, err := h.do(ctx, http.MethodPost, h.BaseUrl+performancePath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate performance: %w", err)
	}

	return DecodeResponse(responseBytes)
}

func (h clientHandler) GetPortfolio(ctx context.Context, userID uuid.UUID) (*domain.PortfolioSummary, error) {
	url := h.BaseUrl + fmt.Sprintf(portfolioPathFmt, userID.String())
	responseBytes, err := h.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	out := domain.PortfolioSummary{}
	if err := json.Unmarshal(responseBytes, &out); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio: %w", err)
	}
	return &out, nil
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("failed with status code %d: %s", e.StatusCode, e.Body)
}

func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// do sends the request, retrying transport failures, 429s and 5xx with
// exponential backoff. other statuses fail immediately
func (h clientHandler) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	log := logger.FromContext(ctx)
	profile := domain.GetProfile(ctx)

	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		span, endSpan := domain.NewSpan(fmt.Sprintf("attempt %d", attempt))
		profile.AddSpan(span)
		defer endSpan()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		response, err := h.HttpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()

		responseBytes, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
		}

		if response.StatusCode >= 200 && response.StatusCode < 300 {
			return responseBytes, nil
		}
		statusErr := StatusError{StatusCode: response.StatusCode, Body: string(responseBytes)}
		if retryable(response.StatusCode) {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = h.RetryDelay

	out, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(h.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warnw("retrying simulation request", "url", url, "error", err, "next", next)
		}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsStatus reports whether err came from a response with the given code
func IsStatus(err error, statusCode int) bool {
	statusErr := StatusError{}
	return errors.As(err, &statusErr) && statusErr.StatusCode == statusCode
}
