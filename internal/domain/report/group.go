package report

import (
	"sort"

	"moneytracker/internal/domain/transaction"
)

// GroupByCategory sums amounts per category. Income and outcome are added
// together; callers filter by type first when they need one side only.
func GroupByCategory(txs []transaction.Transaction) map[string]int64 {
	groups := make(map[string]int64)
	for _, tx := range txs {
		groups[tx.Category] += tx.Amount
	}
	return groups
}

// SortedCategories orders a breakdown by amount descending, then by name.
func SortedCategories(groups map[string]int64) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(groups))
	for category, amount := range groups {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
