package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/core/common/period"
)

// RepositoryAPI is read only: computing a summary never creates a budget.
type RepositoryAPI interface {
	ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]ExpenseAmount, error)
	// MonthlyLimit reports found=false when the user has no budget row.
	MonthlyLimit(ctx context.Context, userID int64) (limit float64, found bool, err error)
}

type Service struct {
	repo     RepositoryAPI
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// NewService takes the current month and year from the clock in loc; nil means
// the server's local zone. Month windows are UTC wall clock, like stored dates.
func NewService(repo RepositoryAPI, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:     repo,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Service) Summary(ctx context.Context, userID int64, q SummaryQuery) (*Summary, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	year, month := q.resolve(s.now().In(s.location))
	from, to := period.MonthRange(year, month, time.UTC)

	rows, err := s.repo.ListInRange(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("failed to load expenses for summary", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to compute summary", err)
	}

	limit, found, err := s.repo.MonthlyLimit(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load budget for summary", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to compute summary", err)
	}
	if !found {
		limit = DefaultMonthlyLimit
	}

	return Summarize(rows, limit, year, month), nil
}
