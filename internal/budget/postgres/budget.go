package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frahmantamala/smartexpense/internal/budget"
	budgetDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/budget"
	"github.com/frahmantamala/smartexpense/internal/database"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) GetByUserID(ctx context.Context, userID int64) (*budgetDatamodel.Budget, error) {
	var b budgetDatamodel.Budget
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budget.ErrBudgetNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) Create(ctx context.Context, b *budgetDatamodel.Budget) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return budget.ErrBudgetExists
		}
		return err
	}
	return nil
}

// Upsert is a single INSERT ... ON CONFLICT (user_id) DO UPDATE.
func (r *BudgetRepository) Upsert(ctx context.Context, userID int64, monthlyLimit float64) (*budgetDatamodel.Budget, error) {
	row := &budgetDatamodel.Budget{
		UserID:       userID,
		MonthlyLimit: monthlyLimit,
		UpdatedAt:    time.Now(),
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_limit", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}
