package report

import (
	"context"

	"moneytracker/internal/domain/transaction"
)

type Repository interface {
	Totals(ctx context.Context, filter transaction.Filter) (AggregateResult, error)
	List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error)
}
