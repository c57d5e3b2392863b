package expense_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/smartexpense/internal"
	expenseDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/expense"
	"github.com/frahmantamala/smartexpense/internal/expense"
)

// Mock repository for testing
type mockExpenseRepository struct {
	expenses   map[int64]*expenseDatamodel.Expense
	lastFilter expense.ListFilter
	listError  error
	nextID     int64
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses: make(map[int64]*expenseDatamodel.Expense),
		nextID:   1,
	}
}

func (m *mockExpenseRepository) List(_ context.Context, userID int64, filter expense.ListFilter) ([]*expenseDatamodel.Expense, error) {
	m.lastFilter = filter
	if m.listError != nil {
		return nil, m.listError
	}
	result := make([]*expenseDatamodel.Expense, 0)
	for _, e := range m.expenses {
		if e.UserID != userID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Note), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.From != nil && e.ExpenseDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.ExpenseDate.Before(*filter.To) {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ExpenseDate.After(result[j].ExpenseDate) })
	return result, nil
}

func (m *mockExpenseRepository) Create(_ context.Context, e *expenseDatamodel.Expense) error {
	e.ID = m.nextID
	m.nextID++
	e.CreatedAt = time.Now()
	cp := *e
	m.expenses[e.ID] = &cp
	return nil
}

func (m *mockExpenseRepository) GetByIDForUser(_ context.Context, id, userID int64) (*expenseDatamodel.Expense, error) {
	e, ok := m.expenses[id]
	if !ok || e.UserID != userID {
		return nil, expense.ErrExpenseNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockExpenseRepository) Update(_ context.Context, e *expenseDatamodel.Expense) error {
	stored, ok := m.expenses[e.ID]
	if !ok || stored.UserID != e.UserID {
		return expense.ErrExpenseNotFound
	}
	stored.Amount, stored.Category, stored.Note, stored.ExpenseDate = e.Amount, e.Category, e.Note, e.ExpenseDate
	return nil
}

func (m *mockExpenseRepository) DeleteForUser(_ context.Context, id, userID int64) error {
	e, ok := m.expenses[id]
	if !ok || e.UserID != userID {
		return expense.ErrExpenseNotFound
	}
	delete(m.expenses, id)
	return nil
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }

func stamp(t time.Time) *expense.Timestamp { return &expense.Timestamp{Time: t} }

var _ = Describe("ExpenseService", func() {
	var (
		service  *expense.Service
		mockRepo *mockExpenseRepository
		ctx      context.Context
	)

	const (
		alice int64 = 1
		bob   int64 = 2
	)

	BeforeEach(func() {
		mockRepo = newMockExpenseRepository()
		service = expense.NewService(mockRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = context.Background()
	})

	Describe("CreateExpense", func() {
		It("should create an expense and default a missing note to empty", func() {
			// Given
			dto := expense.CreateExpenseDTO{
				Amount:   floatPtr(12.5),
				Category: "Food",
				Date:     stamp(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
			}

			// When
			created, err := service.CreateExpense(ctx, alice, dto)

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(1)))
			Expect(created.UserID).To(Equal(alice))
			Expect(created.Note).To(Equal(""))
			Expect(created.CreatedAt.IsZero()).To(BeFalse())
		})

		It("should normalise the date to UTC", func() {
			jakarta := time.FixedZone("WIB", 7*3600)
			dto := expense.CreateExpenseDTO{
				Amount:   floatPtr(1),
				Category: "Food",
				Date:     stamp(time.Date(2024, 3, 1, 5, 0, 0, 0, jakarta)),
			}

			created, err := service.CreateExpense(ctx, alice, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Date).To(Equal(time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC)))
		})

		It("should keep the category as sent", func() {
			created, err := service.CreateExpense(ctx, alice, expense.CreateExpenseDTO{
				Amount: floatPtr(3), Category: " Food", Date: stamp(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Category).To(Equal(" Food"))

			list, err := service.ListExpenses(ctx, alice, expense.ListQuery{Category: " Food"})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})

		It("should accept a zero amount", func() {
			_, err := service.CreateExpense(ctx, alice, expense.CreateExpenseDTO{
				Amount: floatPtr(0), Category: "Food", Date: stamp(time.Now()),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("should reject invalid payloads",
			func(dto expense.CreateExpenseDTO, field string) {
				_, err := service.CreateExpense(ctx, alice, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				details := appErr.Details.(internal.ValidationErrors)
				Expect(details.Errors[0].Field).To(Equal(field))
				Expect(mockRepo.expenses).To(BeEmpty())
			},
			Entry("negative amount", expense.CreateExpenseDTO{Amount: floatPtr(-1), Category: "Food", Date: stamp(time.Now())}, "amount"),
			Entry("missing amount", expense.CreateExpenseDTO{Category: "Food", Date: stamp(time.Now())}, "amount"),
			Entry("blank category", expense.CreateExpenseDTO{Amount: floatPtr(1), Category: "  ", Date: stamp(time.Now())}, "category"),
			Entry("missing date", expense.CreateExpenseDTO{Amount: floatPtr(1), Category: "Food"}, "date"),
		)
	})

	Describe("ListExpenses", func() {
		BeforeEach(func() {
			for _, dto := range []expense.CreateExpenseDTO{
				{Amount: floatPtr(10), Category: "Food", Note: strPtr("Lunch"), Date: stamp(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC))},
				{Amount: floatPtr(20), Category: "Transport", Date: stamp(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC))},
				{Amount: floatPtr(30), Category: "Food", Date: stamp(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))},
			} {
				_, err := service.CreateExpense(ctx, alice, dto)
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := service.CreateExpense(ctx, bob, expense.CreateExpenseDTO{
				Amount: floatPtr(99), Category: "Food", Date: stamp(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return only the caller's expenses", func() {
			list, err := service.ListExpenses(ctx, alice, expense.ListQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(mockRepo.lastFilter.From).To(BeNil())
		})

		It("should build the month window when month and year are both given", func() {
			list, err := service.ListExpenses(ctx, alice, expense.ListQuery{Month: intPtr(3), Year: intPtr(2024)})

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(*mockRepo.lastFilter.From).To(Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
			Expect(*mockRepo.lastFilter.To).To(Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("should roll December over into the next year", func() {
			_, err := service.ListExpenses(ctx, alice, expense.ListQuery{Month: intPtr(12), Year: intPtr(2023)})

			Expect(err).NotTo(HaveOccurred())
			Expect(*mockRepo.lastFilter.To).To(Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("should ignore a month without a year", func() {
			list, err := service.ListExpenses(ctx, alice, expense.ListQuery{Month: intPtr(3)})

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(mockRepo.lastFilter.From).To(BeNil())
		})

		It("should treat a zero month or year as not given", func() {
			list, err := service.ListExpenses(ctx, alice, expense.ListQuery{Month: intPtr(0), Year: intPtr(2024)})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(mockRepo.lastFilter.From).To(BeNil())

			_, err = service.ListExpenses(ctx, alice, expense.ListQuery{Month: intPtr(3), Year: intPtr(0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastFilter.From).To(BeNil())
		})

		It("should reject a month above 12", func() {
			_, err := service.ListExpenses(ctx, alice, expense.ListQuery{Month: intPtr(13), Year: intPtr(2024)})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("should pass category and search through", func() {
			_, err := service.ListExpenses(ctx, alice, expense.ListQuery{Category: "Food", Search: "lun"})

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastFilter.Category).To(Equal("Food"))
			Expect(mockRepo.lastFilter.Search).To(Equal("lun"))
		})

		It("should wrap repository failures", func() {
			mockRepo.listError = errors.New("boom")

			_, err := service.ListExpenses(ctx, alice, expense.ListQuery{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
			Expect(appErr.Message).NotTo(ContainSubstring("boom"))
		})
	})

	Describe("UpdateExpense", func() {
		var existing *expense.Expense

		BeforeEach(func() {
			var err error
			existing, err = service.CreateExpense(ctx, alice, expense.CreateExpenseDTO{
				Amount: floatPtr(50), Category: "Food", Note: strPtr("Dinner"), Date: stamp(time.Date(2024, 3, 3, 19, 0, 0, 0, time.UTC)),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should replace every field", func() {
			updated, err := service.UpdateExpense(ctx, existing.ID, alice, expense.UpdateExpenseDTO{
				Amount: floatPtr(75), Category: "Gifts", Date: stamp(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Amount).To(Equal(75.0))
			Expect(updated.Category).To(Equal("Gifts"))
			Expect(updated.Note).To(Equal(""))
			Expect(updated.ID).To(Equal(existing.ID))
			Expect(updated.CreatedAt).To(Equal(existing.CreatedAt))
			Expect(mockRepo.expenses[existing.ID].Amount).To(Equal(75.0))
		})

		It("should answer 404 for another user's expense", func() {
			_, err := service.UpdateExpense(ctx, existing.ID, bob, expense.UpdateExpenseDTO{
				Amount: floatPtr(1), Category: "X", Date: stamp(time.Now()),
			})

			Expect(err).To(Equal(internal.ErrExpenseNotFound))
			Expect(mockRepo.expenses[existing.ID].Amount).To(Equal(50.0))
		})

		It("should answer the same 404 for a missing expense", func() {
			_, err := service.UpdateExpense(ctx, 999, alice, expense.UpdateExpenseDTO{
				Amount: floatPtr(1), Category: "X", Date: stamp(time.Now()),
			})

			Expect(err).To(Equal(internal.ErrExpenseNotFound))
		})
	})

	Describe("DeleteExpense", func() {
		It("should delete only the owner's expense", func() {
			created, err := service.CreateExpense(ctx, alice, expense.CreateExpenseDTO{
				Amount: floatPtr(5), Category: "Food", Date: stamp(time.Now()),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteExpense(ctx, created.ID, bob)).To(Equal(internal.ErrExpenseNotFound))
			Expect(mockRepo.expenses).To(HaveKey(created.ID))

			Expect(service.DeleteExpense(ctx, created.ID, alice)).To(Succeed())
			Expect(mockRepo.expenses).NotTo(HaveKey(created.ID))
		})
	})
})
