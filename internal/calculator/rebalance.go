package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"stockbuddy/internal/domain"
	"stockbuddy/internal/util"

	"github.com/google/uuid"
)

var ErrNoAllocations = errors.New("choose valid instruments before applying")

const fullAllocation = 100

// ClampPercent rounds to the nearest whole percent and bounds it to
// [0, 100]. NaN and inf become 0
func ClampPercent(v float64) int {
	if !util.IsFinite(v) {
		return 0
	}
	rounded := util.RoundHalfUp(v)
	if rounded < 0 {
		return 0
	}
	if rounded > fullAllocation {
		return fullAllocation
	}
	return int(rounded)
}

// NormalisePercentages spreads target whole units across weights in
// proportion to their size using the largest remainder method. when
// lockIndex points at an entry, that entry keeps its clamped value and
// only the rest of the target is spread over the others
func NormalisePercentages(weights []float64, lockIndex *int, target int) []int {
	if len(weights) == 0 {
		return []int{}
	}
	clean := make([]float64, len(weights))
	for i, w := range weights {
		clean[i] = nonNegative(w)
	}
	if target < 0 {
		target = 0
	}

	if lockIndex == nil || *lockIndex < 0 || *lockIndex >= len(clean) {
		return largestRemainder(clean, target)
	}

	locked := ClampPercent(clean[*lockIndex])
	rest := target - locked
	if rest < 0 {
		rest = 0
	}

	otherIndices := []int{}
	otherValues := []float64{}
	for i, w := range clean {
		if i != *lockIndex {
			otherIndices = append(otherIndices, i)
			otherValues = append(otherValues, w)
		}
	}
	distributed := largestRemainder(otherValues, rest)

	out := make([]int, len(clean))
	out[*lockIndex] = locked
	for pos, i := range otherIndices {
		out[i] = distributed[pos]
	}
	return out
}

// RebalanceTopDown applies an edit to weights[index] without touching
// any earlier row. the edited row is capped at whatever the prefix
// leaves free, and the remaining budget is spread over the later rows
// in proportion to their previous values
func RebalanceTopDown(weights []float64, index int, nextValue float64) []int {
	if len(weights) == 0 {
		return []int{}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(weights) {
		index = len(weights) - 1
	}

	out := make([]int, len(weights))
	for i, w := range weights {
		out[i] = ClampPercent(w)
	}

	prefix := 0
	for _, w := range out[:index] {
		prefix += w
	}
	available := fullAllocation - prefix
	if available < 0 {
		available = 0
	}
	applied := ClampPercent(nextValue)
	if applied > available {
		applied = available
	}
	out[index] = applied

	remaining := fullAllocation - prefix - applied
	if remaining < 0 {
		remaining = 0
	}

	tail := make([]float64, 0, len(out)-index-1)
	for _, w := range out[index+1:] {
		tail = append(tail, float64(w))
	}
	if len(tail) > 0 {
		spread := make([]int, len(tail))
		if remaining > 0 {
			spread = largestRemainder(tail, remaining)
		}
		copy(out[index+1:], spread)
	}

	// rounding can leave the total off by one. fold the difference into
	// the last row; the second pass covers a clamp on the first
	adjustIndex := len(out) - 1
	if len(tail) == 0 {
		adjustIndex = index
	}
	for pass := 0; pass < 2; pass++ {
		diff := fullAllocation - sumInts(out)
		if diff == 0 {
			break
		}
		out[adjustIndex] = ClampPercent(float64(out[adjustIndex] + diff))
	}

	return out
}

// largestRemainder floors each proportional share and hands the
// leftover units to the largest fractional parts. ties go to the
// earlier entry. with no proportional signal it splits evenly
func largestRemainder(values []float64, total int) []int {
	out := make([]int, len(values))
	if len(values) == 0 {
		return out
	}

	scaled := make([]float64, len(values))
	sum := 0.0
	largest := 0.0
	for i, v := range values {
		scaled[i] = nonNegative(v)
		sum += scaled[i]
		largest = math.Max(largest, scaled[i])
	}
	// huge finite weights can overflow the sum; rescale against the
	// largest one
	if math.IsInf(sum, 1) {
		sum = 0
		for i := range scaled {
			scaled[i] /= largest
			sum += scaled[i]
		}
	}
	if sum <= 0 {
		base := total / len(values)
		extra := total - base*len(values)
		for i := range out {
			out[i] = base
			if i < extra {
				out[i]++
			}
		}
		return out
	}

	type share struct {
		index int
		frac  float64
	}
	shares := make([]share, len(values))
	assigned := 0
	for i, v := range scaled {
		exact := v / sum * float64(total)
		floor := math.Floor(exact)
		out[i] = int(floor)
		assigned += out[i]
		shares[i] = share{index: i, frac: exact - floor}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].frac > shares[j].frac
	})

	shortfall := total - assigned
	for i := 0; shortfall > 0 && i < len(shares); i++ {
		out[shares[i].index]++
		shortfall--
	}
	return out
}

// AdjustWeight nudges one row by delta percent, the +/- stepper
func AdjustWeight(rows []domain.WeightRow, index int, delta int) []domain.WeightRow {
	if len(rows) == 0 || index < 0 || index >= len(rows) {
		return rows
	}
	weights := domain.WeightsFromRows(rows)
	target := ClampPercent(weights[index] + float64(delta))
	return domain.WithWeights(rows, RebalanceTopDown(weights, index, float64(target)))
}

// CanAdjust reports whether the stepper for delta should be enabled
func CanAdjust(rows []domain.WeightRow, index int, delta int) bool {
	if index < 0 || index >= len(rows) || delta == 0 {
		return false
	}
	current := rows[index].Weight
	if delta < 0 {
		return current > 0
	}
	return current < fullAllocation
}

// SetWeight applies a typed value to a row. anything that is not a
// digit is stripped before parsing
func SetWeight(rows []domain.WeightRow, index int, value string) []domain.WeightRow {
	if len(rows) == 0 || index < 0 || index >= len(rows) {
		return rows
	}
	target := ClampPercent(parseDigits(value))
	weights := domain.WeightsFromRows(rows)
	return domain.WithWeights(rows, RebalanceTopDown(weights, index, float64(target)))
}

func NormaliseRows(rows []domain.WeightRow) []domain.WeightRow {
	if len(rows) == 0 {
		return rows
	}
	return domain.WithWeights(rows, NormalisePercentages(domain.WeightsFromRows(rows), nil, fullAllocation))
}

// TotalWeight sums the clamped row weights. an empty table counts as
// fully allocated so it does not show a warning
func TotalWeight(rows []domain.WeightRow) int {
	if len(rows) == 0 {
		return fullAllocation
	}
	total := 0
	for _, r := range rows {
		total += ClampPercent(float64(r.Weight))
	}
	return total
}

func WeightDelta(rows []domain.WeightRow) int {
	return fullAllocation - TotalWeight(rows)
}

// MoveRow swaps a row with its neighbour. moves past either end are
// ignored
func MoveRow(rows []domain.WeightRow, index int, up bool) []domain.WeightRow {
	if len(rows) <= 1 || index < 0 || index >= len(rows) {
		return rows
	}
	target := index + 1
	if up {
		target = index - 1
	}
	if target < 0 || target >= len(rows) {
		return rows
	}
	out := append([]domain.WeightRow{}, rows...)
	out[index], out[target] = out[target], out[index]
	return out
}

func AddRow(rows []domain.WeightRow) []domain.WeightRow {
	return append(append([]domain.WeightRow{}, rows...), domain.WeightRow{
		ID: uuid.NewString(),
	})
}

func RemoveRow(rows []domain.WeightRow, id string) []domain.WeightRow {
	out := []domain.WeightRow{}
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// RowsFromAllocations builds editable rows from a stored symbol -> weight
// map, ordered by symbol and normalised to 100
func RowsFromAllocations(allocations map[string]float64) []domain.WeightRow {
	symbols := make([]string, 0, len(allocations))
	for symbol := range allocations {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	raw := make([]float64, len(symbols))
	for i, symbol := range symbols {
		raw[i] = allocations[symbol]
	}
	weights := NormalisePercentages(raw, nil, fullAllocation)

	rows := make([]domain.WeightRow, len(symbols))
	for i, symbol := range symbols {
		rows[i] = domain.WeightRow{
			ID:     fmt.Sprintf("%s-%d", symbol, i),
			Symbol: symbol,
			Weight: weights[i],
		}
	}
	return rows
}

// PrepareCustomAllocations turns the builder table into the list sent
// to the custom portfolio endpoint. duplicate symbols are merged in
// first seen order and blank or empty rows dropped
func PrepareCustomAllocations(rows []domain.WeightRow) ([]domain.Allocation, error) {
	order := []string{}
	totals := map[string]int{}
	for _, r := range rows {
		symbol := strings.TrimSpace(r.Symbol)
		if symbol == "" {
			continue
		}
		if _, ok := totals[symbol]; !ok {
			order = append(order, symbol)
		}
		totals[symbol] += r.Weight
	}

	allocations := []domain.Allocation{}
	for _, symbol := range order {
		if totals[symbol] <= 0 {
			continue
		}
		allocations = append(allocations, domain.Allocation{
			Symbol: symbol,
			Weight: ClampPercent(float64(totals[symbol])),
		})
	}
	if len(allocations) == 0 {
		return nil, ErrNoAllocations
	}

	raw := make([]float64, len(allocations))
	for i, a := range allocations {
		raw[i] = float64(a.Weight)
	}
	for i, w := range NormalisePercentages(raw, nil, fullAllocation) {
		allocations[i].Weight = w
	}
	return allocations, nil
}

func nonNegative(v float64) float64 {
	if !util.IsFinite(v) || v < 0 {
		return 0
	}
	return v
}

func parseDigits(value string) float64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	if digits == "" {
		return 0
	}
	f := 0.0
	for _, r := range digits {
		f = f*10 + float64(r-'0')
	}
	return f
}

func sumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
