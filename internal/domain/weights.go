package domain

// WeightRow is a single editable line in the allocation table. Weight
// is an integer percent in [0, 100]
type WeightRow struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Weight int    `json:"weight"`
}

// Allocation is a cleaned row that is ready to be sent to the
// custom portfolio endpoint
type Allocation struct {
	Symbol string `json:"symbol"`
	Weight int    `json:"weight"`
}

func WeightsFromRows(rows []WeightRow) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = float64(r.Weight)
	}
	return out
}

// WithWeights returns a copy of rows with the given weights applied
// in order. rows without a matching weight get 0
func WithWeights(rows []WeightRow, weights []int) []WeightRow {
	out := make([]WeightRow, len(rows))
	for i, r := range rows {
		r.Weight = 0
		if i < len(weights) {
			r.Weight = weights[i]
		}
		out[i] = r
	}
	return out
}
