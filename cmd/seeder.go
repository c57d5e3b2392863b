package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/auth"
	"github.com/frahmantamala/smartexpense/internal/budget"
	budgetPostgres "github.com/frahmantamala/smartexpense/internal/budget/postgres"
	"github.com/frahmantamala/smartexpense/internal/expense"
	expensePostgres "github.com/frahmantamala/smartexpense/internal/expense/postgres"
	"github.com/frahmantamala/smartexpense/internal/user"
	userPostgres "github.com/frahmantamala/smartexpense/internal/user/postgres"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

const (
	demoEmail    = "demo@smartexpense.dev"
	demoName     = "Demo User"
	demoPassword = "demo-password"
	demoLimit    = 1800.0
)

var clearData bool

type sampleExpense struct {
	day      int
	amount   float64
	category string
	note     string
}

// demoExpenses are spread over the current month.
var demoExpenses = []sampleExpense{
	{1, 950, "Housing", "Rent"},
	{2, 42.3, "Food", "Groceries"},
	{3, 2.75, "Transport", "Bus ticket"},
	{5, 18.5, "Food", "Lunch with team"},
	{8, 60, "Utilities", "Electricity"},
	{10, 12.99, "Entertainment", "Streaming subscription"},
	{12, 35.2, "Food", "Groceries"},
	{15, 45, "Transport", "Fuel"},
	{20, 80, "Health", "Pharmacy"},
	{25, 27.4, "Food", "Dinner"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a demo account",
	Long:  `Create ` + demoEmail + ` with a budget and a month of sample expenses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg, lg)
		if err != nil {
			return err
		}
		defer closeDB(db, lg)

		ctx := cmd.Context()

		if clearData {
			userService := user.NewService(userPostgres.NewUserRepository(db), lg)
			if err := userService.DeleteByEmail(ctx, demoEmail); err != nil && !errors.Is(err, user.ErrNotFound) {
				return fmt.Errorf("failed to clear demo user: %w", err)
			}
		}

		authService, err := newAuthService(cfg, db, lg)
		if err != nil {
			return err
		}

		registered, err := authService.Register(ctx, auth.RegisterDTO{
			Email:    demoEmail,
			Name:     demoName,
			Password: demoPassword,
		})
		if err != nil {
			if errors.Is(err, internal.ErrEmailRegistered) {
				fmt.Println("demo user already exists; run with --clear to recreate it")
				return nil
			}
			return fmt.Errorf("failed to create demo user: %w", err)
		}
		userID := registered.User.ID

		budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(db), lg)
		limit := demoLimit
		if _, err := budgetService.UpdateBudget(ctx, userID, budget.UpdateBudgetDTO{MonthlyLimit: &limit}); err != nil {
			return fmt.Errorf("failed to seed budget: %w", err)
		}

		expenseService := expense.NewService(expensePostgres.NewExpenseRepository(db), lg)
		if err := seedExpenses(ctx, expenseService, userID, time.Now()); err != nil {
			return err
		}

		fmt.Printf("Seeded %s (password %q) with %d expenses\n", demoEmail, demoPassword, len(demoExpenses))
		return nil
	},
}

func seedExpenses(ctx context.Context, svc *expense.Service, userID int64, now time.Time) error {
	for _, sample := range demoExpenses {
		amount, note := sample.amount, sample.note
		date := expense.Timestamp{Time: time.Date(now.Year(), now.Month(), sample.day, 12, 0, 0, 0, time.UTC)}

		if _, err := svc.CreateExpense(ctx, userID, expense.CreateExpenseDTO{
			Amount:   &amount,
			Category: sample.category,
			Note:     &note,
			Date:     &date,
		}); err != nil {
			return fmt.Errorf("failed to seed expense %q: %w", sample.note, err)
		}
	}
	return nil
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Delete the demo account before seeding")
}
