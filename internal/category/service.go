package category

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/smartexpense/internal"
)

type RepositoryAPI interface {
	// ListUsed returns one entry per distinct category, ordered by name.
	ListUsed(ctx context.Context, userID int64) ([]*Category, error)
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

func (s *Service) GetUserCategories(ctx context.Context, userID int64) ([]CategoryResponse, error) {
	categories, err := s.repo.ListUsed(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get categories", err)
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, c.ToResponse())
	}

	s.logger.Debug("retrieved categories", "count", len(responses), "user_id", userID)
	return responses, nil
}
