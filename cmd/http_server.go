package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/analytics"
	analyticsPostgres "github.com/frahmantamala/smartexpense/internal/analytics/postgres"
	"github.com/frahmantamala/smartexpense/internal/auth"
	authPostgres "github.com/frahmantamala/smartexpense/internal/auth/postgres"
	"github.com/frahmantamala/smartexpense/internal/budget"
	budgetPostgres "github.com/frahmantamala/smartexpense/internal/budget/postgres"
	"github.com/frahmantamala/smartexpense/internal/category"
	categoryPostgres "github.com/frahmantamala/smartexpense/internal/category/postgres"
	"github.com/frahmantamala/smartexpense/internal/database"
	"github.com/frahmantamala/smartexpense/internal/expense"
	expensePostgres "github.com/frahmantamala/smartexpense/internal/expense/postgres"
	"github.com/frahmantamala/smartexpense/internal/transport"
	"github.com/frahmantamala/smartexpense/internal/transport/rest"
	"github.com/frahmantamala/smartexpense/internal/user"
	userPostgres "github.com/frahmantamala/smartexpense/internal/user/postgres"
	"github.com/frahmantamala/smartexpense/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer(parent context.Context) error {
	deps, err := initializeDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer closeDB(deps.DB, deps.Logger)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := deps.Config.Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Logger.Info("starting HTTP server", "address", server.Addr, "environment", deps.Config.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := internal.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	deps.Logger.Info("server stopped")
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(config, lg)
	if err != nil {
		return nil, err
	}

	handlers, err := buildHandlers(config, db, lg)
	if err != nil {
		closeDB(db, lg)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		closeDB(db, lg)
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	router := chi.NewRouter()
	if err := rest.RegisterAllRoutes(router, sqlDB, handlers, rest.Options{
		AllowedOrigins: config.Server.Origins(),
		RequestTimeout: config.Server.RequestTimeout,
	}); err != nil {
		closeDB(db, lg)
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// initDB opens the configured database and creates the schema when
// auto_migrate is enabled.
func initDB(cfg *internal.Config, lg *slog.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			closeDB(db, lg)
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	return db, nil
}

func closeDB(db *gorm.DB, lg *slog.Logger) {
	if err := database.Close(db); err != nil {
		lg.Error("database close error", "error", err)
	}
}

func newAuthService(cfg *internal.Config, db *gorm.DB, lg *slog.Logger) (*auth.Service, error) {
	tokens := auth.NewJWTTokenIssuer(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration)
	svc, err := auth.NewService(authPostgres.NewRepository(db), tokens, cfg.Security.BCryptCost, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	return svc, nil
}

// buildHandlers wires repositories, services and handlers. Month windows
// are computed in the server's local time zone.
func buildHandlers(cfg *internal.Config, db *gorm.DB, lg *slog.Logger) (rest.Handlers, error) {
	authService, err := newAuthService(cfg, db, lg)
	if err != nil {
		return rest.Handlers{}, err
	}

	sqlxDB, err := database.NewSQLX(db)
	if err != nil {
		return rest.Handlers{}, fmt.Errorf("failed to initialize sqlx: %w", err)
	}

	userService := user.NewService(userPostgres.NewUserRepository(db), lg)
	expenseService := expense.NewService(expensePostgres.NewExpenseRepository(db), lg)
	budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(db), lg)
	analyticsService := analytics.NewService(analyticsPostgres.NewSummaryRepository(sqlxDB), time.Local, lg)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(db), lg)

	return rest.Handlers{
		Auth:      auth.NewHandler(authService),
		User:      user.NewHandler(userService),
		Expense:   expense.NewHandler(expenseService),
		Budget:    budget.NewHandler(budgetService),
		Analytics: analytics.NewHandler(analyticsService),
		Category:  category.NewHandler(transport.NewBaseHandler(lg), categoryService),
	}, nil
}
