package analytics

import (
	"time"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/core/common/validation"
)

// DefaultMonthlyLimit is reported when the user has never stored a budget.
const DefaultMonthlyLimit = 2000.0

// Summary is the monthly spending report of one user.
type Summary struct {
	Total        float64            `json:"total"`
	MonthlyLimit float64            `json:"monthly_limit"`
	ByCategory   map[string]float64 `json:"by_category"`
	ExpenseCount int                `json:"expense_count"`
	Month        int                `json:"month"`
	Year         int                `json:"year"`
}

// ExpenseAmount is the projection the summary is computed from.
type ExpenseAmount struct {
	Amount   float64 `db:"amount"`
	Category string  `db:"category"`
}

// SummaryQuery holds the optional month and year of GET /analytics/summary.
type SummaryQuery struct {
	Month *int
	Year  *int
}

// Validate accepts 0 for month and year, meaning "use the current one".
func (q SummaryQuery) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("month", q.Month).IntRange(0, 12, errors.ErrCodeInvalidPeriod)
	v.Field("year", q.Year).IntRange(0, 9998, errors.ErrCodeInvalidPeriod)
	return v.Validate()
}

// resolve fills each missing or zero value from now independently.
func (q SummaryQuery) resolve(now time.Time) (int, time.Month) {
	year, month := now.Year(), now.Month()
	if q.Year != nil && *q.Year != 0 {
		year = *q.Year
	}
	if q.Month != nil && *q.Month != 0 {
		month = time.Month(*q.Month)
	}
	return year, month
}

// Summarize folds the rows of one month into a Summary.
func Summarize(rows []ExpenseAmount, monthlyLimit float64, year int, month time.Month) *Summary {
	s := &Summary{
		MonthlyLimit: monthlyLimit,
		ByCategory:   make(map[string]float64),
		ExpenseCount: len(rows),
		Month:        int(month),
		Year:         year,
	}
	for _, row := range rows {
		s.Total += row.Amount
		s.ByCategory[row.Category] += row.Amount
	}
	return s
}
