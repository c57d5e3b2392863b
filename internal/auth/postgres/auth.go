package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/smartexpense/internal/auth"
	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
	"github.com/frahmantamala/smartexpense/internal/database"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts user and fills its id and created_at. A duplicate email
// surfaces as auth.ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, user *userDatamodel.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return auth.ErrEmailTaken
		}
		return err
	}
	return nil
}
