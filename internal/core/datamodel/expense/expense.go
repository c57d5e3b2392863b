package expense

import (
	"time"

	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

type Expense struct {
	ID          int64               `gorm:"primaryKey"`
	UserID      int64               `gorm:"column:user_id;not null;index"`
	User        *userDatamodel.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Amount      float64             `gorm:"column:amount;type:double precision;not null"`
	Category    string              `gorm:"column:category;not null;index"`
	Note        string              `gorm:"column:note;type:text;not null"`
	ExpenseDate time.Time           `gorm:"column:expense_date;not null;index"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
