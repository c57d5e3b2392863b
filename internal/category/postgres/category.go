package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/smartexpense/internal/category"
	expenseDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/expense"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListUsed(ctx context.Context, userID int64) ([]*category.Category, error) {
	var rows []struct {
		Category     string
		ExpenseCount int64
	}
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Select("category, COUNT(*) AS expense_count").
		Where("user_id = ?", userID).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]*category.Category, len(rows))
	for i, row := range rows {
		categories[i] = &category.Category{Name: row.Category, ExpenseCount: row.ExpenseCount}
	}
	return categories, nil
}
