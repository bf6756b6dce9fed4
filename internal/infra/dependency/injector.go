// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/export"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// categorySeeder adapts the seed use case to the auth.CategorySeeder interface.
type categorySeeder struct {
	uc *category.SeedDefaultCategoriesUseCase
}

func (s categorySeeder) Execute(ctx context.Context, userID uuid.UUID) error {
	_, err := s.uc.Execute(ctx, userID)
	return err
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	EmailSender adapter.EmailSender
}

// Options configures optional injector dependencies. A nil Redis client
// falls back to in-memory rate limiting; a nil EmailSender builds the real
// Resend client from configuration.
type Options struct {
	RedisClient *redis.Client
	EmailSender adapter.EmailSender
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	verificationTokenService := adapters.NewEmailVerificationTokenService(tokenRepo)

	// Email pipeline
	emailService := email.NewService(emailQueueRepo)

	emailSender := opts.EmailSender
	if emailSender == nil {
		emailSender = email.NewResendClient(
			cfg.Email.ResendAPIKey,
			cfg.Email.FromName,
			cfg.Email.FromEmail,
		)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, expenseRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, expenseRepo)
	seedCategoriesUseCase := category.NewSeedDefaultCategoriesUseCase(categoryRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(
		userRepo,
		passwordService,
		verificationTokenService,
		emailService,
		categorySeeder{seedCategoriesUseCase},
		cfg.Email.AppBaseURL,
	)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	verifyEmailUseCase := auth.NewVerifyEmailUseCase(userRepo, verificationTokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, categoryRepo)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, categoryRepo)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo, expenseRepo)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Create report use cases
	predefinedReportUseCase := report.NewGeneratePredefinedReportUseCase(expenseRepo, categoryRepo)
	customReportUseCase := report.NewGenerateCustomReportUseCase(expenseRepo, categoryRepo)
	performanceUseCase := report.NewAnalyzeCategoryPerformanceUseCase(expenseRepo, categoryRepo, budgetRepo)
	heatmapUseCase := report.NewGenerateHeatmapUseCase(expenseRepo)
	trendUseCase := report.NewGenerateMonthlyTrendUseCase(expenseRepo, categoryRepo)

	// Create export use case
	exportUseCase := export.NewExportExpensesUseCase(expenseRepo, categoryRepo, budgetRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		verifyEmailUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	userController := controller.NewUserController(
		deleteAccountUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		getExpenseUseCase,
		createExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)

	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		createBudgetUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)

	reportController := controller.NewReportController(
		predefinedReportUseCase,
		customReportUseCase,
		performanceUseCase,
		heatmapUseCase,
		trendUseCase,
	)

	exportController := controller.NewExportController(exportUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(opts.RedisClient, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(opts.RedisClient)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		categoryController,
		expenseController,
		budgetController,
		reportController,
		exportController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
		EmailSender: emailSender,
	}, nil
}
