package transaction

import (
	"context"
	"strings"

	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
)

type Servicer interface {
	Add(ctx context.Context, tx Transaction) (int64, error)
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	SeedSample(ctx context.Context) (int, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "transaction_service"),
	}
}

// Add validates tx and stores it. The returned id is assigned by the store.
func (s *Service) Add(ctx context.Context, tx Transaction) (int64, error) {
	tx.Category = strings.TrimSpace(tx.Category)
	tx.Note = strings.TrimSpace(tx.Note)

	if err := tx.Validate(); err != nil {
		s.log.Debug("validation failed", "error", err)
		return 0, errs.Wrap(errs.ErrInvalidInput, "add transaction", err)
	}

	id, err := s.repo.Create(ctx, tx)
	if err != nil {
		return 0, err
	}

	s.log.Debug("transaction added", "id", id, "type", tx.Type, "date", tx.Date)
	return id, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return errs.Wrap(errs.ErrNotFound, "remove transaction", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrInvalidInput, "list transactions", err)
	}
	return s.repo.List(ctx, filter)
}

// SeedSample inserts the demo data set in one batch.
func (s *Service) SeedSample(ctx context.Context) (int, error) {
	ids, err := s.repo.CreateBatch(ctx, SampleTransactions())
	if err != nil {
		return 0, err
	}

	s.log.Info("sample transactions inserted", "count", len(ids))
	return len(ids), nil
}
