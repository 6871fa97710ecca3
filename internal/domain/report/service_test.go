package report

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"moneytracker/internal/domain/errs"
	"moneytracker/internal/domain/transaction"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Totals(ctx context.Context, filter transaction.Filter) (AggregateResult, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(AggregateResult), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]transaction.Transaction), args.Error(1)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAggregateResult_Balance(t *testing.T) {
	assert.Equal(t, int64(7), AggregateResult{TotalIncome: 10, TotalOutcome: 3}.Balance())
	assert.Equal(t, int64(-3), AggregateResult{TotalOutcome: 3}.Balance())
	assert.Zero(t, AggregateResult{}.Balance())
}

func TestGroupByCategory(t *testing.T) {
	txs := []transaction.Transaction{
		{Type: transaction.TypeOutcome, Category: "Food", Amount: 5},
		{Type: transaction.TypeOutcome, Category: "Food", Amount: 7},
		{Type: transaction.TypeIncome, Category: "Salary", Amount: 100},
		{Type: transaction.TypeIncome, Category: "Food", Amount: 1},
	}

	assert.Equal(t, map[string]int64{"Food": 13, "Salary": 100}, GroupByCategory(txs))
	assert.Empty(t, GroupByCategory(nil))
}

func TestSortedCategories(t *testing.T) {
	got := SortedCategories(map[string]int64{"Gas": 5, "Food": 12, "Drink": 5})
	assert.Equal(t, []CategoryAmount{
		{Category: "Food", Amount: 12},
		{Category: "Drink", Amount: 5},
		{Category: "Gas", Amount: 5},
	}, got)
}

func TestService_Totals(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Totals", mock.Anything, transaction.OnDate("2024-11-05")).
		Return(AggregateResult{TotalIncome: 100, TotalOutcome: 30}, nil)

	got, err := service.Totals(context.Background(), transaction.OnDate("2024-11-05"))
	require.NoError(t, err)
	assert.Equal(t, int64(70), got.Balance())

	_, err = service.Totals(context.Background(), transaction.OnDate("5 Nov"))
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	mockRepo.AssertNumberOfCalls(t, "Totals", 1)
}

func TestService_Summary(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	filter := transaction.InMonth("2024-11")

	mockRepo.On("Totals", mock.Anything, filter).Return(AggregateResult{TotalIncome: 100, TotalOutcome: 12}, nil)
	mockRepo.On("List", mock.Anything, filter).Return([]transaction.Transaction{
		{Type: transaction.TypeIncome, Category: "Salary", Amount: 100},
		{Type: transaction.TypeOutcome, Category: "Food", Amount: 12},
	}, nil)

	summary, err := service.Summary(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(88), summary.Balance)
	assert.Equal(t, int64(100), summary.Totals.TotalIncome)
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Salary", summary.Categories[0].Category)
}

func TestService_CategoryBreakdown_StorageError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("List", mock.Anything, transaction.All()).
		Return(nil, errs.Wrap(errs.ErrStorage, "list transactions", errors.New("locked")))

	_, err := service.CategoryBreakdown(context.Background(), transaction.All())
	assert.ErrorIs(t, err, errs.ErrStorage)
}
