package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/smartexpense/internal"
	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

// Service registers users, checks credentials and resolves bearer tokens.
type Service struct {
	repo       RepositoryAPI
	tokens     TokenIssuer
	bcryptCost int
	dummyHash  string
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenIssuer, bcryptCost int, logger *slog.Logger) (*Service, error) {
	dummy, err := newDummyHash(bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		logger:     logger,
	}, nil
}

// Register creates the account and signs the new user in.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByEmail(ctx, dto.Email)
	switch {
	case err == nil:
		s.logger.Warn("register rejected: email taken")
		return nil, internal.ErrEmailRegistered
	case !errors.Is(err, ErrUserNotFound):
		s.logger.Error("register: failed to look up email", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Email:          dto.Email,
		Name:           dto.Name,
		HashedPassword: hash,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// lost a race with a concurrent registration
			s.logger.Warn("register rejected: email taken on insert")
			return nil, internal.ErrEmailRegistered
		}
		s.logger.Error("register: failed to create user", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", row.ID)
	return s.issue(FromDataModel(row))
}

// Login answers the same error for an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Error("login: failed to look up user", "error", err)
			return nil, internal.NewInternalError("failed to authenticate", err)
		}
		VerifyPassword(s.dummyHash, dto.Password)
		s.logger.Warn("login failed", "reason", "unknown email")
		return nil, internal.ErrInvalidCredentials
	}

	if !VerifyPassword(row.HashedPassword, dto.Password) {
		s.logger.Warn("login failed", "reason", "wrong password", "user_id", row.ID)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", row.ID)
	return s.issue(FromDataModel(row))
}

// Authenticate resolves a bearer token to its user. Bad tokens and tokens for
// users that no longer exist fail identically.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	email, ok := s.tokens.ValidateToken(token)
	if !ok {
		return nil, internal.ErrInvalidToken
	}

	row, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) issue(user *User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		User:        user,
	}, nil
}
