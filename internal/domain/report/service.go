package report

import (
	"context"

	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
	"moneytracker/internal/domain/transaction"
)

type Servicer interface {
	Totals(ctx context.Context, filter transaction.Filter) (AggregateResult, error)
	CategoryBreakdown(ctx context.Context, filter transaction.Filter) (map[string]int64, error)
	Summary(ctx context.Context, filter transaction.Filter) (Summary, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "report_service"),
	}
}

// Totals sums income and outcome of the transactions matching filter.
// An empty selection yields zeros.
func (s *Service) Totals(ctx context.Context, filter transaction.Filter) (AggregateResult, error) {
	if err := filter.Validate(); err != nil {
		return AggregateResult{}, errs.Wrap(errs.ErrInvalidInput, "totals", err)
	}
	return s.repo.Totals(ctx, filter)
}

func (s *Service) CategoryBreakdown(ctx context.Context, filter transaction.Filter) (map[string]int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrInvalidInput, "category breakdown", err)
	}

	txs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(txs), nil
}

func (s *Service) Summary(ctx context.Context, filter transaction.Filter) (Summary, error) {
	totals, err := s.Totals(ctx, filter)
	if err != nil {
		return Summary{}, err
	}

	groups, err := s.CategoryBreakdown(ctx, filter)
	if err != nil {
		return Summary{}, err
	}

	s.log.Debug("summary computed", "filter", filter.String(), "categories", len(groups))

	return Summary{
		Totals:     totals,
		Balance:    totals.Balance(),
		Categories: SortedCategories(groups),
	}, nil
}
