package domain

type Holding struct {
	Symbol string        `json:"symbol"`
	Name   string        `json:"name,omitempty"`
	Weight OptionalFloat `json:"weight"`
	Sleeve string        `json:"sleeve,omitempty"`
}

// PortfolioSummary is what the portfolio collaborator returns for a
// user. totals are used as the fallback metrics before any projection
// has loaded
type PortfolioSummary struct {
	Holdings            []Holding          `json:"holdings"`
	TotalValue          OptionalFloat      `json:"total_value"`
	TotalCost           OptionalFloat      `json:"total_cost"`
	TotalPnl            OptionalFloat      `json:"total_pnl"`
	TotalPnlPct         OptionalFloat      `json:"total_pnl_pct"`
	BaselineAllocations map[string]float64 `json:"baseline_allocations"`
}

func (p PortfolioSummary) HeldSymbols() []string {
	symbols := []string{}
	for _, h := range p.Holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}
