package expense

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/core/common/period"
	expenseDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/expense"
)

// RepositoryAPI is implemented by postgres.ExpenseRepository. Every method is
// scoped to a single user.
type RepositoryAPI interface {
	List(ctx context.Context, userID int64, filter ListFilter) ([]*expenseDatamodel.Expense, error)
	Create(ctx context.Context, expense *expenseDatamodel.Expense) error
	GetByIDForUser(ctx context.Context, id, userID int64) (*expenseDatamodel.Expense, error)
	Update(ctx context.Context, expense *expenseDatamodel.Expense) error
	DeleteForUser(ctx context.Context, id, userID int64) error
}

// Service handles expense business logic
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListExpenses returns the user's expenses, newest first. The month window is
// applied only when both month and year are given and non-zero. Dates are
// stored as UTC wall clock, so the window is too.
func (s *Service) ListExpenses(ctx context.Context, userID int64, q ListQuery) ([]*Expense, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filter := ListFilter{Category: q.Category, Search: q.Search}
	if year, month, ok := q.window(); ok {
		from, to := period.MonthRange(year, month, time.UTC)
		filter.From, filter.To = &from, &to
	}

	rows, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) CreateExpense(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := ToDataModel(NewExpense(userID, dto))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", row.ID,
		"user_id", userID,
		"amount", row.Amount,
		"category", row.Category)

	return FromDataModel(row), nil
}

// UpdateExpense answers the same not found error for a missing expense and for
// one owned by someone else.
func (s *Service) UpdateExpense(ctx context.Context, id, userID int64, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, s.mapRepoError("update", id, userID, err)
	}

	e := FromDataModel(row)
	e.Replace(dto)
	row = ToDataModel(e)

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, s.mapRepoError("update", id, userID, err)
	}

	s.logger.Info("expense updated", "expense_id", id, "user_id", userID)
	return e, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id, userID int64) error {
	if err := s.repo.DeleteForUser(ctx, id, userID); err != nil {
		return s.mapRepoError("delete", id, userID, err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", userID)
	return nil
}

func (s *Service) mapRepoError(op string, id, userID int64, err error) error {
	if errors.Is(err, ErrExpenseNotFound) {
		s.logger.Warn("expense not found for user", "op", op, "expense_id", id, "user_id", userID)
		return internal.ErrExpenseNotFound
	}
	s.logger.Error("expense repository failure", "op", op, "error", err, "expense_id", id, "user_id", userID)
	return internal.NewInternalError("failed to "+op+" expense", err)
}
