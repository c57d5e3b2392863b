package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

// User is the public profile. The password hash never leaves the repository
// layer.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
