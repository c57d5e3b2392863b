package expense

import (
	"errors"
	"time"

	expenseDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/expense"
)

// Expense is a single spending event owned by one user.
type Expense struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ListFilter narrows a user's expenses. Empty strings and nil bounds do not
// filter. From is inclusive and To exclusive.
type ListFilter struct {
	Category string
	Search   string
	From     *time.Time
	To       *time.Time
}

var ErrExpenseNotFound = errors.New("expense not found")

func NewExpense(userID int64, dto CreateExpenseDTO) *Expense {
	e := &Expense{UserID: userID}
	e.apply(dto.fields())
	return e
}

// Replace overwrites every user editable field.
func (e *Expense) Replace(dto UpdateExpenseDTO) {
	e.apply(dto.fields())
}

func (e *Expense) apply(f expenseFields) {
	e.Amount = f.amount
	e.Category = f.category
	e.Note = f.note
	e.Date = f.date.UTC()
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Category:    e.Category,
		Note:        e.Note,
		ExpenseDate: e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:        e.ID,
		UserID:    e.UserID,
		Amount:    e.Amount,
		Category:  e.Category,
		Note:      e.Note,
		Date:      e.ExpenseDate.UTC(),
		CreatedAt: e.CreatedAt,
	}
}

// FromDataModelSlice never returns nil so an empty list encodes as [].
func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
