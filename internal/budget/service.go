package budget

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/smartexpense/internal"
	budgetDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/budget"
)

type RepositoryAPI interface {
	GetByUserID(ctx context.Context, userID int64) (*budgetDatamodel.Budget, error)
	// Create fails with ErrBudgetExists when the user already has a row.
	Create(ctx context.Context, budget *budgetDatamodel.Budget) error
	Upsert(ctx context.Context, userID int64, monthlyLimit float64) (*budgetDatamodel.Budget, error)
}

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

// GetBudget returns the user's budget, creating it with DefaultMonthlyLimit on
// first access. Concurrent first reads converge on a single row through the
// unique user_id constraint.
func (s *Service) GetBudget(ctx context.Context, userID int64) (*Budget, error) {
	row, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return FromDataModel(row), nil
	}
	if !errors.Is(err, ErrBudgetNotFound) {
		s.logger.Error("failed to get budget", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get budget", err)
	}

	row = &budgetDatamodel.Budget{UserID: userID, MonthlyLimit: DefaultMonthlyLimit}
	if err := s.repo.Create(ctx, row); err != nil {
		if !errors.Is(err, ErrBudgetExists) {
			s.logger.Error("failed to create default budget", "error", err, "user_id", userID)
			return nil, internal.NewInternalError("failed to get budget", err)
		}
		row, err = s.repo.GetByUserID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to reload budget after concurrent create", "error", err, "user_id", userID)
			return nil, internal.NewInternalError("failed to get budget", err)
		}
		return FromDataModel(row), nil
	}

	s.logger.Info("default budget created", "user_id", userID, "monthly_limit", DefaultMonthlyLimit)
	return FromDataModel(row), nil
}

func (s *Service) UpdateBudget(ctx context.Context, userID int64, dto UpdateBudgetDTO) (*Budget, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.Upsert(ctx, userID, *dto.MonthlyLimit)
	if err != nil {
		s.logger.Error("failed to update budget", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to update budget", err)
	}

	s.logger.Info("budget updated", "user_id", userID, "monthly_limit", row.MonthlyLimit)
	return FromDataModel(row), nil
}
