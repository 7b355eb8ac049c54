package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/ShahHet2812/IITxOdoo-Enterance/docs"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/auth"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/company"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/config"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/currency"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/database"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/expense"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/logger"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/notification"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/receipt"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/user"
	mw "github.com/ShahHet2812/IITxOdoo-Enterance/pkg/middleware"
)

// @title           Expensio API
// @version         1.0
// @description     Multi-tenant expense reporting with configurable approval workflows.
// @BasePath        /api/v1
func main() {
	// Load .env file, falling back to process environment variables
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Log.Sync()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Log.Info("connected to database")

	// Repositories
	companyRepo := company.NewRepository(db)
	userRepo := user.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	expenseRepo := expense.NewRepository(db)

	// Collaborators
	rates := currency.NewAPIClient(cfg.CurrencyAPIBase)
	extractor := receipt.NewTextExtractor()

	// Services
	notificationService := notification.NewService(notificationRepo, logger.Log)
	companyService := company.NewService(companyRepo)
	userService := user.NewService(userRepo, notificationService)
	authService := auth.NewService(userRepo, companyRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	expenseService := expense.NewService(expenseRepo, userRepo, companyRepo, notificationService, rates, logger.Log)

	// Handlers
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	userHandler := user.NewHandler(userService)
	expenseHandler := expense.NewHandler(expenseService)
	notificationHandler := notification.NewHandler(notificationService)
	receiptHandler := receipt.NewHandler(extractor, logger.Log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger(logger.Log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.PublicRoutes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticated(cfg.JWTSecret))

			r.Get("/auth/me", authHandler.Me)
			r.Mount("/company", companyHandler.Routes())
			r.Mount("/users", userHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
			r.Mount("/receipts", receiptHandler.Routes())
		})
	})

	logger.Log.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Log.Fatal("server failed", zap.Error(err))
	}
}
