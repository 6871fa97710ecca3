package transaction

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneytracker/internal/domain/transaction"
)

func TestWriteCSV(t *testing.T) {
	txs := []transaction.Transaction{
		{ID: 2, Type: transaction.TypeOutcome, Date: "2024-11-02", Amount: 1250, Category: "Food", Note: `said "hi", then left`},
		{ID: 1, Type: transaction.TypeIncome, Date: "2024-11-01", Amount: 100000, Category: "Salary"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, txs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Date", "Type", "Amount", "Category", "Note"}, records[0])
	assert.Equal(t, []string{"2", "2024-11-02", "OUTCOME", "12.50", "Food", `said "hi", then left`}, records[1])
	assert.Equal(t, []string{"1", "2024-11-01", "INCOME", "1000.00", "Salary", ""}, records[2])
}
