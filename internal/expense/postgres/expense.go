package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	expenseDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/expense"
	"github.com/frahmantamala/smartexpense/internal/expense"
)

// ExpenseRepository implements expense.RepositoryAPI using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// caseInsensitiveLike matches column against a pattern ignoring case. Postgres
// folds case with ILIKE for all of Unicode; sqlite's LIKE already ignores case,
// for ASCII letters only.
func (r *ExpenseRepository) caseInsensitiveLike(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return column + ` ILIKE ? ESCAPE '\'`
	}
	return column + ` LIKE ? ESCAPE '\'`
}

// List applies the filter on top of the user scope, newest expense first.
func (r *ExpenseRepository) List(ctx context.Context, userID int64, filter expense.ListFilter) ([]*expenseDatamodel.Expense, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		query = query.Where(r.caseInsensitiveLike("note"), pattern)
	}
	if filter.From != nil {
		query = query.Where("expense_date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("expense_date < ?", filter.To.UTC())
	}

	expenses := make([]*expenseDatamodel.Expense, 0)
	err := query.Order("expense_date DESC").Order("id DESC").Find(&expenses).Error
	return expenses, err
}

// Create saves a new expense to the database
func (r *ExpenseRepository) Create(ctx context.Context, exp *expenseDatamodel.Expense) error {
	exp.ExpenseDate = exp.ExpenseDate.UTC()
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(exp).Error
}

// GetByIDForUser returns ErrExpenseNotFound for rows of other users too.
func (r *ExpenseRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrExpenseNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// Update writes every editable column, zero values included.
func (r *ExpenseRepository) Update(ctx context.Context, exp *expenseDatamodel.Expense) error {
	res := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND user_id = ?", exp.ID, exp.UserID).
		Updates(map[string]interface{}{
			"amount":       exp.Amount,
			"category":     exp.Category,
			"note":         exp.Note,
			"expense_date": exp.ExpenseDate.UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&expenseDatamodel.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}
