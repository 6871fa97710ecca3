package transaction

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, tx Transaction) (int64, error)
	CreateBatch(ctx context.Context, txs []Transaction) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	// List returns matching transactions, newest id first.
	List(ctx context.Context, filter Filter) ([]Transaction, error)
}
