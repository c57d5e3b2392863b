package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/smartexpense/internal/analytics"
)

// SummaryRepository reads projections straight through sqlx.
type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

const listInRangeQuery = `
	SELECT amount, category
	FROM expenses
	WHERE user_id = ? AND expense_date >= ? AND expense_date < ?`

func (r *SummaryRepository) ListInRange(ctx context.Context, userID int64, from, to time.Time) ([]analytics.ExpenseAmount, error) {
	rows := make([]analytics.ExpenseAmount, 0)
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listInRangeQuery), userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	return rows, nil
}

const monthlyLimitQuery = `SELECT monthly_limit FROM budgets WHERE user_id = ?`

func (r *SummaryRepository) MonthlyLimit(ctx context.Context, userID int64) (float64, bool, error) {
	var limit float64
	err := r.db.GetContext(ctx, &limit, r.db.Rebind(monthlyLimitQuery), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return limit, true, nil
}
