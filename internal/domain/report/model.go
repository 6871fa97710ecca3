package report

// AggregateResult holds income and outcome sums in minor units.
type AggregateResult struct {
	TotalIncome  int64 `json:"total_income"`
	TotalOutcome int64 `json:"total_outcome"`
}

// Balance is income minus outcome. It is derived, never stored.
func (r AggregateResult) Balance() int64 {
	return r.TotalIncome - r.TotalOutcome
}

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// Summary combines totals with a category breakdown sorted by amount.
type Summary struct {
	Totals     AggregateResult  `json:"totals"`
	Balance    int64            `json:"balance"`
	Categories []CategoryAmount `json:"categories"`
}
