package budget

import (
	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/core/common/validation"
)

// UpdateBudgetDTO is the body of PUT /budget. Negative limits are accepted.
type UpdateBudgetDTO struct {
	MonthlyLimit *float64 `json:"monthly_limit"`
}

func (dto UpdateBudgetDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("monthly_limit", dto.MonthlyLimit).Required()
	return v.Validate()
}
