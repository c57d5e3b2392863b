package rest

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/smartexpense/api"
	"github.com/frahmantamala/smartexpense/internal/analytics"
	"github.com/frahmantamala/smartexpense/internal/auth"
	"github.com/frahmantamala/smartexpense/internal/budget"
	"github.com/frahmantamala/smartexpense/internal/category"
	"github.com/frahmantamala/smartexpense/internal/expense"
	"github.com/frahmantamala/smartexpense/internal/transport/middleware"
	"github.com/frahmantamala/smartexpense/internal/transport/swagger"
	"github.com/frahmantamala/smartexpense/internal/user"
)

// Handlers groups the module handlers mounted by RegisterAllRoutes.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Expense   *expense.Handler
	Budget    *budget.Handler
	Analytics *analytics.Handler
	Category  *category.Handler
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, opts Options) error {
	validator, err := middleware.NewOpenAPIValidator(api.Spec)
	if err != nil {
		return err
	}

	healthHandler := NewHealthHandler(db)

	// Global middleware. Recovery sits inside logging so a recovered panic is
	// still logged as a 500.
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	if opts.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Group(func(pub chi.Router) {
		pub.Use(validator.Middleware)
		pub.Post("/auth/register", h.Auth.Register)
		pub.Post("/auth/login", h.Auth.Login)
	})

	// Protected routes: authentication runs before schema validation so an
	// anonymous request is refused before its payload is inspected.
	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.AuthMiddleware)
		pr.Use(validator.Middleware)

		pr.Get("/auth/me", h.User.GetCurrentUser)

		pr.Route("/expenses", func(er chi.Router) {
			er.Get("/", h.Expense.ListExpenses)
			er.Post("/", h.Expense.CreateExpense)
			er.Put("/{id}", h.Expense.UpdateExpense)
			er.Delete("/{id}", h.Expense.DeleteExpense)
		})

		pr.Get("/budget", h.Budget.GetBudget)
		pr.Put("/budget", h.Budget.UpdateBudget)

		pr.Get("/analytics/summary", h.Analytics.GetSummary)
		pr.Get("/categories", h.Category.GetCategories)
	})

	return nil
}
