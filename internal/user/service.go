package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/smartexpense/internal"
	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*userDatamodel.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// the token outlived the account
			return nil, internal.ErrInvalidToken
		}
		s.logger.Error("failed to get user by id", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to load user", err)
	}
	return FromDataModel(u), nil
}

// DeleteByEmail removes the account together with its expenses and budget.
func (s *Service) DeleteByEmail(ctx context.Context, email string) error {
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to delete user", "email", email, "error", err)
		}
		return err
	}
	s.logger.Info("user deleted", "email", email)
	return nil
}
