package calculator

import (
	"strings"
	"testing"

	"stockbuddy/internal/domain"
	"stockbuddy/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func point(date string, value float64) domain.SeriesPoint {
	return domain.SeriesPoint{Date: date, Value: domain.NewOptionalFloat(value)}
}

func TestAlignSeries(t *testing.T) {
	t.Run("missing scenario date is a gap", func(t *testing.T) {
		baseline := []domain.SeriesPoint{
			point("2024-01-01", 100),
			point("2024-02-01", 110),
			point("2024-03-01", 120),
		}
		scenario := []domain.SeriesPoint{
			point("2024-01-01", 200),
			point("2024-02-01", 0),
		}
		out := AlignSeries(baseline, scenario)
		require.Equal(t, "", cmp.Diff([]*float64{
			util.FloatPointer(200),
			util.FloatPointer(0),
			nil,
		}, out))
	})

	t.Run("null points are gaps", func(t *testing.T) {
		baseline := []domain.SeriesPoint{point("2024-01-01", 100)}
		scenario := []domain.SeriesPoint{{Date: "2024-01-01"}}
		require.Equal(t, "", cmp.Diff([]*float64{nil}, AlignSeries(baseline, scenario)))
	})

	t.Run("empty other series", func(t *testing.T) {
		baseline := []domain.SeriesPoint{point("2024-01-01", 100)}
		require.Equal(t, "", cmp.Diff([]*float64{nil}, AlignSeries(baseline, nil)))
	})
}

func TestBuildChart(t *testing.T) {
	baseline := &domain.PerformancePayload{
		Series: []domain.SeriesPoint{
			point("2024-01-01", 1000),
			point("2024-02-01", 1100),
			point("2024-03-01", 1050),
		},
		BenchmarkSeries: []domain.SeriesPoint{
			point("2024-01-01", 1000),
			point("2024-03-01", 1300),
		},
		BenchmarkLabel: "MSCI World",
	}
	scenario := &domain.PerformancePayload{
		Series: []domain.SeriesPoint{
			point("2024-01-01", 500),
			point("2024-02-01", 520),
		},
	}
	draft := domain.ScenarioDraft{
		InitialDraft: "500",
		Mode:         domain.InvestmentMode_LumpSum,
	}

	t.Run("happy path", func(t *testing.T) {
		view := BuildChart(baseline, scenario, ChartOptions{
			Scenario: &draft,
			Plan:     domain.NewDefaultPlanInputs(),
		})

		require.Equal(t, []string{"Jan 2024", "Feb 2024", "Mar 2024"}, view.Labels)
		require.Len(t, view.Datasets, 3)

		require.Equal(t, DatasetKind_Portfolio, view.Datasets[0].Kind)
		require.Equal(t, "Portfolio value", view.Datasets[0].Label)
		require.False(t, view.Datasets[0].SpanGaps)

		require.Equal(t, "Scenario (R500 lump sum)", view.Datasets[1].Label)
		require.True(t, view.Datasets[1].SpanGaps)
		require.Nil(t, view.Datasets[1].Data[2])

		require.Equal(t, "MSCI World (benchmark)", view.Datasets[2].Label)
		require.Nil(t, view.Datasets[2].Data[1])
		require.Equal(t, 1300.0, *view.Datasets[2].Data[2])

		require.Equal(t, 500.0, *view.YMin)
		require.Equal(t, 1300.0, *view.YMax)
	})

	t.Run("no scenario line when disabled", func(t *testing.T) {
		view := BuildChart(baseline, scenario, ChartOptions{InflationAdjust: true})
		require.Len(t, view.Datasets, 2)
		require.Equal(t, "Portfolio (real rand)", view.Datasets[0].Label)
	})

	t.Run("empty baseline", func(t *testing.T) {
		view := BuildChart(nil, nil, ChartOptions{})
		require.Empty(t, view.Labels)
		require.Nil(t, view.YMin)
		require.Nil(t, view.YMax)
	})

	t.Run("csv export", func(t *testing.T) {
		view := BuildChart(baseline, scenario, ChartOptions{Scenario: &draft})
		out, err := view.ToCSV()
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		require.Len(t, lines, 4)
		require.Equal(t, "date,label,portfolio,scenario,benchmark", lines[0])
		require.Equal(t, "2024-01-01,Jan 2024,1000,500,1000", lines[1])
		require.True(t, strings.HasPrefix(lines[3], "2024-03-01,Mar 2024,1050,"))
	})
}

func TestScenarioLegend(t *testing.T) {
	plan := domain.NewDefaultPlanInputs()

	t.Run("lump sum", func(t *testing.T) {
		legend := ScenarioLegend(domain.ScenarioDraft{InitialDraft: "1000", Mode: domain.InvestmentMode_LumpSum}, plan)
		require.Equal(t, "Scenario (R1 000 lump sum)", legend)
	})

	t.Run("monthly", func(t *testing.T) {
		legend := ScenarioLegend(domain.ScenarioDraft{
			InitialDraft: "500",
			MonthlyDraft: "300",
			Mode:         domain.InvestmentMode_Monthly,
			Frequency:    domain.ContributionFrequency_Monthly,
		}, plan)
		require.Equal(t, "Scenario (Monthly debit order · R500 + R300/month)", legend)
	})

	t.Run("annual", func(t *testing.T) {
		legend := ScenarioLegend(domain.ScenarioDraft{
			InitialDraft: "500",
			MonthlyDraft: "250",
			Mode:         domain.InvestmentMode_Monthly,
			Frequency:    domain.ContributionFrequency_Annual,
			AnnualMonth:  "3",
		}, plan)
		require.Equal(t, "Scenario (Annual in March · R500 + R250/year)", legend)
	})

	t.Run("unparseable draft uses plan amount", func(t *testing.T) {
		legend := ScenarioLegend(domain.ScenarioDraft{InitialDraft: "", Mode: domain.InvestmentMode_LumpSum}, plan)
		require.Equal(t, "Scenario (R1 000 lump sum)", legend)
	})
}
