package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
	"moneytracker/internal/domain/report"
	"moneytracker/internal/domain/transaction"
)

const (
	insertTransaction = `INSERT INTO transactions (type, date, amount, category, note) VALUES (?, ?, ?, ?, ?)`
	selectTransaction = `SELECT id, type, date, amount, category, note FROM transactions`
	sumTransactions   = `SELECT
		COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount END), 0),
		COALESCE(SUM(CASE WHEN type = 'OUTCOME' THEN amount END), 0)
	FROM transactions`
)

type TransactionRepository struct {
	storage *Storage
	log     *slog.Logger
}

func NewTransactionRepository(storage *Storage, log *slog.Logger) *TransactionRepository {
	return &TransactionRepository{
		storage: storage,
		log:     log,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx transaction.Transaction) (int64, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx, insertTransaction,
		tx.Type.String(), tx.Date.String(), tx.Amount, tx.Category, tx.Note)
	if err != nil {
		return 0, r.storage.fail("create transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, r.storage.fail("create transaction", err)
	}
	return id, nil
}

// CreateBatch inserts txs in one SQL transaction: either all rows are stored
// or none.
func (r *TransactionRepository) CreateBatch(ctx context.Context, txs []transaction.Transaction) (ids []int64, err error) {
	const op = "create transactions"

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	dbTx, err := r.storage.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, r.storage.fail(op, err)
	}
	defer func() {
		if err != nil {
			if rbErr := dbTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.log.Error("rollback failed", "op", op, "error", rbErr)
			}
		}
	}()

	stmt, err := dbTx.PrepareContext(ctx, insertTransaction)
	if err != nil {
		return nil, r.storage.fail(op, err)
	}
	defer stmt.Close()

	ids = make([]int64, 0, len(txs))
	for _, tx := range txs {
		res, err := stmt.ExecContext(ctx, tx.Type.String(), tx.Date.String(), tx.Amount, tx.Category, tx.Note)
		if err != nil {
			return nil, r.storage.fail(op, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return nil, r.storage.fail(op, err)
		}
		ids = append(ids, id)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, r.storage.fail(op, err)
	}
	return ids, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	res, err := r.storage.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return r.storage.fail("delete transaction", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return r.storage.fail("delete transaction", err)
	}
	if n == 0 {
		return errs.Wrap(errs.ErrNotFound, "delete transaction", nil)
	}
	return nil
}

// List returns matching transactions ordered by id, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error) {
	const op = "list transactions"

	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	where, args := whereClause(filter)
	rows, err := r.storage.db.QueryContext(ctx, selectTransaction+where+` ORDER BY id DESC`, args...)
	if err != nil {
		return nil, r.storage.fail(op, err)
	}
	defer rows.Close()

	var txs []transaction.Transaction
	for rows.Next() {
		var (
			tx   transaction.Transaction
			typ  string
			date string
			note sql.NullString
		)
		if err := rows.Scan(&tx.ID, &typ, &date, &tx.Amount, &tx.Category, &note); err != nil {
			return nil, r.storage.fail(op, err)
		}
		tx.Type = transaction.Type(typ)
		tx.Date = transaction.Date(date)
		tx.Note = note.String
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storage.fail(op, err)
	}

	return txs, nil
}

// Totals sums income and outcome of the matching rows; no rows give zeros.
func (r *TransactionRepository) Totals(ctx context.Context, filter transaction.Filter) (report.AggregateResult, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	where, args := whereClause(filter)

	var res report.AggregateResult
	err := r.storage.db.QueryRowContext(ctx, sumTransactions+where, args...).
		Scan(&res.TotalIncome, &res.TotalOutcome)
	if err != nil {
		return report.AggregateResult{}, r.storage.fail("totals", err)
	}
	return res, nil
}

// whereClause renders filter. The month filter compares the first seven
// characters of the stored date, so malformed dates never match.
func whereClause(filter transaction.Filter) (string, []any) {
	switch filter.Kind() {
	case transaction.FilterDate:
		return ` WHERE date = ?`, []any{filter.Value()}
	case transaction.FilterMonth:
		return ` WHERE substr(date, 1, 7) = ?`, []any{filter.Value()}
	case transaction.FilterCategory:
		return ` WHERE category = ?`, []any{filter.Value()}
	}
	return "", nil
}
