package calculator

import (
	"fmt"
	"strconv"
	"time"

	"stockbuddy/internal/domain"
	"stockbuddy/internal/util"

	"github.com/Rhymond/go-money"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

const (
	portfolioLabel     = "Portfolio value"
	portfolioRealLabel = "Portfolio (real rand)"
	defaultBenchmark   = "Benchmark"
)

type DatasetKind string

const (
	DatasetKind_Portfolio DatasetKind = "portfolio"
	DatasetKind_Scenario  DatasetKind = "scenario"
	DatasetKind_Benchmark DatasetKind = "benchmark"
)

type ChartDataset struct {
	Kind     DatasetKind `json:"kind"`
	Label    string      `json:"label"`
	Data     []*float64  `json:"data"`
	SpanGaps bool        `json:"spanGaps"`
}

// ChartView is the baseline line plus any scenario and benchmark lines
// aligned to the baseline dates
type ChartView struct {
	Dates    []string       `json:"dates"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	YMin     *float64       `json:"yMin"`
	YMax     *float64       `json:"yMax"`
}

type ChartOptions struct {
	InflationAdjust bool
	// Scenario is used for the legend; nil hides the scenario line
	Scenario       *domain.ScenarioDraft
	Plan           domain.PlanInputs
	BenchmarkLabel string
}

// BuildAlignment maps each date to its value. points without a value
// are left out so lookups report a gap
func BuildAlignment(series []domain.SeriesPoint) map[string]float64 {
	out := make(map[string]float64, len(series))
	for _, p := range series {
		if p.Value.Valid {
			out[p.Date] = p.Value.Value
		} else {
			delete(out, p.Date)
		}
	}
	return out
}

// AlignSeries returns one entry per baseline date. dates the other
// series does not cover are nil, never zero
func AlignSeries(baseline, other []domain.SeriesPoint) []*float64 {
	alignment := BuildAlignment(other)
	out := make([]*float64, len(baseline))
	for i, p := range baseline {
		if v, ok := alignment[p.Date]; ok {
			v := v
			out[i] = &v
		}
	}
	return out
}

func BuildChart(baseline, scenario *domain.PerformancePayload, opts ChartOptions) ChartView {
	series := SelectSeries(baseline, opts.InflationAdjust)

	view := ChartView{
		Dates:    make([]string, len(series)),
		Labels:   make([]string, len(series)),
		Datasets: []ChartDataset{},
	}
	values := make([]*float64, len(series))
	for i, p := range series {
		view.Dates[i] = p.Date
		view.Labels[i] = monthLabel(p.Date)
		values[i] = p.Value.Ptr()
	}

	label := portfolioLabel
	if opts.InflationAdjust {
		label = portfolioRealLabel
	}
	view.Datasets = append(view.Datasets, ChartDataset{
		Kind:  DatasetKind_Portfolio,
		Label: label,
		Data:  values,
	})

	if scenario != nil && opts.Scenario != nil {
		scenarioSeries := SelectSeries(scenario, opts.InflationAdjust)
		if len(scenarioSeries) > 0 {
			view.Datasets = append(view.Datasets, ChartDataset{
				Kind:     DatasetKind_Scenario,
				Label:    ScenarioLegend(*opts.Scenario, opts.Plan),
				Data:     AlignSeries(series, scenarioSeries),
				SpanGaps: true,
			})
		}
	}

	if baseline != nil && len(baseline.BenchmarkSeries) > 0 {
		benchmarkLabel := baseline.BenchmarkLabel
		if benchmarkLabel == "" {
			benchmarkLabel = opts.BenchmarkLabel
		}
		if benchmarkLabel == "" {
			benchmarkLabel = defaultBenchmark
		}
		view.Datasets = append(view.Datasets, ChartDataset{
			Kind:     DatasetKind_Benchmark,
			Label:    fmt.Sprintf("%s (benchmark)", benchmarkLabel),
			Data:     AlignSeries(series, baseline.BenchmarkSeries),
			SpanGaps: true,
		})
	}

	view.YMin, view.YMax = axisBounds(view.Datasets)
	return view
}

func axisBounds(datasets []ChartDataset) (*float64, *float64) {
	data := stats.Float64Data{}
	for _, ds := range datasets {
		for _, v := range ds.Data {
			if v != nil {
				data = append(data, *v)
			}
		}
	}
	if data.Len() == 0 {
		return nil, nil
	}
	lo, err := data.Min()
	if err != nil {
		return nil, nil
	}
	hi, err := data.Max()
	if err != nil {
		return nil, nil
	}
	return &lo, &hi
}

func monthLabel(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2006")
}

// FormatRand renders a whole rand amount, e.g. R1 000
func FormatRand(amount float64) string {
	if !util.IsFinite(amount) {
		amount = 0
	}
	cur := money.GetCurrency(money.ZAR)
	f := money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(int64(util.RoundHalfUp(amount)))
}

// ScenarioLegend describes the scenario line, e.g.
// "Scenario (R1 000 lump sum)"
func ScenarioLegend(draft domain.ScenarioDraft, plan domain.PlanInputs) string {
	initial := FormatRand(draft.ParsedInitial(plan.InitialInvestment))
	if draft.Mode != domain.InvestmentMode_Monthly {
		return fmt.Sprintf("Scenario (%s lump sum)", initial)
	}
	recurring := FormatRand(draft.ParsedMonthly(plan.MonthlyContribution))
	return fmt.Sprintf("Scenario (%s · %s + %s)", frequencyDisplay(draft), initial, recurringLabel(draft.Frequency, recurring))
}

func frequencyDisplay(draft domain.ScenarioDraft) string {
	switch draft.Frequency {
	case domain.ContributionFrequency_Monthly, "":
		return "Monthly debit order"
	case domain.ContributionFrequency_Quarterly:
		return "Quarterly contribution"
	case domain.ContributionFrequency_Annual:
		if m, err := strconv.Atoi(draft.AnnualMonth); err == nil && m >= 1 && m <= 12 {
			return fmt.Sprintf("Annual in %s", time.Month(m).String())
		}
		return fmt.Sprintf("Annual in month %s", draft.AnnualMonth)
	}
	return "Recurring contribution"
}

func recurringLabel(freq domain.ContributionFrequency, amount string) string {
	switch freq {
	case domain.ContributionFrequency_Monthly, "":
		return amount + "/month"
	case domain.ContributionFrequency_Quarterly:
		return amount + "/quarter"
	case domain.ContributionFrequency_Annual:
		return amount + "/year"
	}
	return amount
}

type ChartRow struct {
	Date      string   `csv:"date"`
	Label     string   `csv:"label"`
	Portfolio *float64 `csv:"portfolio"`
	Scenario  *float64 `csv:"scenario"`
	Benchmark *float64 `csv:"benchmark"`
}

// Rows flattens the chart into one row per baseline date
func (v ChartView) Rows() []ChartRow {
	rows := make([]ChartRow, len(v.Dates))
	for i, date := range v.Dates {
		rows[i] = ChartRow{Date: date, Label: v.Labels[i]}
	}
	for _, ds := range v.Datasets {
		for i := range rows {
			if i >= len(ds.Data) {
				break
			}
			switch ds.Kind {
			case DatasetKind_Portfolio:
				rows[i].Portfolio = ds.Data[i]
			case DatasetKind_Scenario:
				rows[i].Scenario = ds.Data[i]
			case DatasetKind_Benchmark:
				rows[i].Benchmark = ds.Data[i]
			}
		}
	}
	return rows
}

func (v ChartView) ToCSV() ([]byte, error) {
	rows := v.Rows()
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart rows: %w", err)
	}
	return out, nil
}
