package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"stockbuddy/internal/calculator"
	"stockbuddy/internal/domain"
	"stockbuddy/internal/logger"
	"stockbuddy/internal/util"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.New().Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stockbuddy",
		Short:         "allocation and projection tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRebalanceCmd(), newNormalizeCmd(), newMetricsCmd(), newExportCmd())
	return root
}

func parseWeights(raw string) ([]float64, error) {
	out := []float64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", part, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func newRebalanceCmd() *cobra.Command {
	var (
		weights string
		index   int
		value   float64
	)
	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "set one weight and rebalance the rows below it",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseWeights(weights)
			if err != nil {
				return err
			}
			return util.Pprint(cmd.OutOrStdout(), calculator.RebalanceTopDown(w, index, value))
		},
	}
	cmd.Flags().StringVar(&weights, "weights", "", "comma separated weights")
	cmd.Flags().IntVar(&index, "index", 0, "row being edited")
	cmd.Flags().Float64Var(&value, "value", 0, "new weight for the row")
	cmd.MarkFlagRequired("weights")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var (
		weights   string
		lockIndex int
		target    int
	)
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "scale weights to whole percents summing to target",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseWeights(weights)
			if err != nil {
				return err
			}
			var lock *int
			if cmd.Flags().Changed("lock") {
				lock = util.IntPointer(lockIndex)
			}
			return util.Pprint(cmd.OutOrStdout(), calculator.NormalisePercentages(w, lock, target))
		},
	}
	cmd.Flags().StringVar(&weights, "weights", "", "comma separated weights")
	cmd.Flags().IntVar(&lockIndex, "lock", 0, "index of a weight to keep fixed")
	cmd.Flags().IntVar(&target, "target", 100, "total to normalise to")
	cmd.MarkFlagRequired("weights")
	return cmd
}

func readPayload(path string) (*domain.PerformancePayload, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	payload := domain.PerformancePayload{}
	if err := json.Unmarshal(bytes, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &payload, nil
}

func newMetricsCmd() *cobra.Command {
	var (
		payloadPath     string
		inflationAdjust bool
		policy          string
	)
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "derive headline metrics from a simulation payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(payloadPath)
			if err != nil {
				return err
			}
			fallback := domain.DistributionPolicy(policy)
			if !fallback.IsValid() {
				return fmt.Errorf("invalid policy %q", policy)
			}
			return util.Pprint(cmd.OutOrStdout(), calculator.ComputeMetrics(payload, inflationAdjust, fallback))
		},
	}
	cmd.Flags().StringVar(&payloadPath, "payload", "", "path to a simulation payload")
	cmd.Flags().BoolVar(&inflationAdjust, "inflation", false, "use real values")
	cmd.Flags().StringVar(&policy, "policy", string(domain.DistributionPolicy_Reinvest), "fallback distribution policy")
	cmd.MarkFlagRequired("payload")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		payloadPath     string
		inflationAdjust bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the chart for a simulation payload as csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(payloadPath)
			if err != nil {
				return err
			}
			view := calculator.BuildChart(payload, nil, calculator.ChartOptions{InflationAdjust: inflationAdjust})
			out, err := view.ToCSV()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&payloadPath, "payload", "", "path to a simulation payload")
	cmd.Flags().BoolVar(&inflationAdjust, "inflation", false, "use real values")
	cmd.MarkFlagRequired("payload")
	return cmd
}
