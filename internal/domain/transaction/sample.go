package transaction

import (
	"fmt"
)

const SampleSize = 100

var sampleCategories = []string{"Food", "Travel", "Shopping", "Drink", "Gas", "Sport", "Salary"}

// SampleTransactions builds the demo data set: rows 1..SampleSize, even rows
// income and odd rows outcome, spread over November 2024 with rotating
// categories. Row i has amount (i+1)*10.
func SampleTransactions() []Transaction {
	txs := make([]Transaction, 0, SampleSize)
	for i := 1; i <= SampleSize; i++ {
		typ := TypeOutcome
		if i%2 == 0 {
			typ = TypeIncome
		}

		txs = append(txs, Transaction{
			Type:     typ,
			Date:     Date(fmt.Sprintf("2024-11-%02d", i%30+1)),
			Amount:   int64(i+1) * 10,
			Category: sampleCategories[i%len(sampleCategories)],
			Note:     fmt.Sprintf("Note: %d", i),
		})
	}
	return txs
}
