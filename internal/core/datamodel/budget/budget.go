package budget

import (
	"time"

	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

// Budget is unique per user; the unique index is what serializes concurrent
// first-time creation.
type Budget struct {
	ID           int64               `gorm:"primaryKey"`
	UserID       int64               `gorm:"column:user_id;not null;uniqueIndex"`
	User         *userDatamodel.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MonthlyLimit float64             `gorm:"column:monthly_limit;type:double precision;not null"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Budget) TableName() string {
	return "budgets"
}
