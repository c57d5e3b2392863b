package budget

import (
	"errors"
	"time"

	budgetDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/budget"
)

// DefaultMonthlyLimit is the limit of a budget created on first read.
const DefaultMonthlyLimit = 2000.0

type Budget struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	MonthlyLimit float64   `json:"monthly_limit"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already exists")
)

func FromDataModel(b *budgetDatamodel.Budget) *Budget {
	return &Budget{
		ID:           b.ID,
		UserID:       b.UserID,
		MonthlyLimit: b.MonthlyLimit,
		UpdatedAt:    b.UpdatedAt,
	}
}
