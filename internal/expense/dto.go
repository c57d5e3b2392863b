package expense

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	errors "github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/core/common/validation"
)

// Timestamp accepts RFC 3339 as well as naive "2006-01-02T15:04:05" and plain
// dates. Naive values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("date %q is not an ISO 8601 datetime", s)
}

// CreateExpenseDTO represents the request payload for creating an expense
type CreateExpenseDTO struct {
	Amount   *float64   `json:"amount"`
	Category string     `json:"category"`
	Note     *string    `json:"note"`
	Date     *Timestamp `json:"date"`
}

// UpdateExpenseDTO replaces every editable field, so it has the same shape.
type UpdateExpenseDTO CreateExpenseDTO

type expenseFields struct {
	amount   float64
	category string
	note     string
	date     time.Time
}

func (dto CreateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("amount", dto.Amount).Required().NonNegative(errors.ErrCodeInvalidAmount)
	v.Field("category", dto.Category).Required().MaxLength(100)
	var date *time.Time
	if dto.Date != nil && !dto.Date.IsZero() {
		date = &dto.Date.Time
	}
	v.Field("date", date).Required()
	return v.Validate()
}

func (dto UpdateExpenseDTO) Validate() *errors.AppError {
	return CreateExpenseDTO(dto).Validate()
}

// fields must only be called on a validated DTO.
func (dto CreateExpenseDTO) fields() expenseFields {
	f := expenseFields{
		amount:   *dto.Amount,
		category: dto.Category,
		date:     dto.Date.Time,
	}
	if dto.Note != nil {
		f.note = *dto.Note
	}
	return f
}

func (dto UpdateExpenseDTO) fields() expenseFields {
	return CreateExpenseDTO(dto).fields()
}

// ListQuery is the parsed query string of GET /expenses.
type ListQuery struct {
	Category string
	Search   string
	Month    *int
	Year     *int
}

// Validate accepts 0 for month and year, meaning "not given".
func (q ListQuery) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("month", q.Month).IntRange(0, 12, errors.ErrCodeInvalidPeriod)
	v.Field("year", q.Year).IntRange(0, 9998, errors.ErrCodeInvalidPeriod)
	return v.Validate()
}

func (q ListQuery) window() (int, time.Month, bool) {
	if q.Month == nil || q.Year == nil || *q.Month == 0 || *q.Year == 0 {
		return 0, 0, false
	}
	return *q.Year, time.Month(*q.Month), true
}
