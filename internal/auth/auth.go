package auth

import (
	"context"
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

// User is the authenticated principal carried through the request context.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RepositoryAPI is the credential side of the user store.
type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, user *userDatamodel.User) error
}

// TokenIssuer creates and checks access tokens.
type TokenIssuer interface {
	GenerateAccessToken(email string) (string, error)
	ValidateToken(token string) (email string, ok bool)
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
