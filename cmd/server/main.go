package main

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/localplate/localplate/internal"
	"github.com/localplate/localplate/internal/alerts"
	"github.com/localplate/localplate/internal/assistant"
	"github.com/localplate/localplate/internal/billing"
	"github.com/localplate/localplate/internal/bootstrap"
	"github.com/localplate/localplate/internal/crypto"
	"github.com/localplate/localplate/internal/delivery"
	"github.com/localplate/localplate/internal/email"
	"github.com/localplate/localplate/internal/grocery"
	"github.com/localplate/localplate/internal/handler"
	adminhandler "github.com/localplate/localplate/internal/handler/admin"
	"github.com/localplate/localplate/internal/handler/api"
	"github.com/localplate/localplate/internal/handler/webhook"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/router"
	"github.com/localplate/localplate/internal/routes"
	"github.com/localplate/localplate/internal/service"
	"github.com/localplate/localplate/internal/storage"
	"github.com/localplate/localplate/internal/tax"
	"github.com/localplate/localplate/internal/telemetry"
	"github.com/localplate/localplate/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking (no-op without a DSN)
	sentryFlush, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryFlush()

	// Register business metrics
	businessMetrics := telemetry.InitBusinessMetrics("localplate")

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository. Store carries both the Querier and the
	// transaction runner services need.
	store := repository.NewStore(pool)

	// Create the initial admin user on first startup
	if err := bootstrap.EnsureAdmin(ctx, store, &bootstrap.AdminConfig{
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
	}, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// ==========================================================================
	// Initialize providers
	// ==========================================================================

	// Stripe billing
	stripeCfg := billing.StripeConfig{
		APIKey:          cfg.Stripe.SecretKey,
		WebhookSecret:   cfg.Stripe.WebhookSecret,
		EnableStripeTax: cfg.Stripe.TaxEnabled,
	}
	billingProvider, err := billing.NewStripeProvider(stripeCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Stripe provider: %w", err)
	}
	logger.Info("Stripe billing ready", "test_mode", stripeCfg.IsTestMode(), "stripe_tax", stripeCfg.EnableStripeTax)

	// Photo storage (local disk or R2)
	fileStore, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "provider", cfg.Storage.Provider)

	// Assistant provider powers chat, meal plans, and offering embeddings
	aiProvider, err := assistant.NewOpenAIProvider(cfg.OpenAI, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize assistant provider: %w", err)
	}

	// Kroger grocery search is optional; the assistant tool reports itself
	// unavailable when it is not configured.
	var groceryProvider grocery.Provider
	if cfg.Kroger.ClientID != "" && cfg.Kroger.ClientSecret != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return fmt.Errorf("invalid encryption key: %w", err)
		}
		encryptor, err := crypto.NewAESEncryptor(key)
		if err != nil {
			return fmt.Errorf("failed to initialize encryptor: %w", err)
		}
		groceryProvider, err = grocery.NewKrogerProvider(cfg.Kroger, store, encryptor, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Kroger provider: %w", err)
		}
		logger.Info("Kroger grocery provider initialized")
	} else {
		logger.Info("Kroger grocery provider not configured, skipping")
	}

	// Transactional email
	var sender email.Sender
	if cfg.Email.PostmarkToken != "" {
		sender = email.NewPostmarkSender(cfg.Email.PostmarkToken)
	} else {
		sender = email.NewSMTPSender(&email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     int(cfg.Email.Port),
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			FromName: cfg.Email.FromName,
		})
	}
	emailService, err := email.NewService(sender, cfg.Email.From, cfg.Email.FromName, cfg.Email.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	// Operational alerts (n8n webhooks; no-op when disabled)
	notifier := alerts.NewN8NNotifier(cfg.Alerts, cfg.Env)

	// Checkout pricing
	quoter := delivery.NewFlatFeeQuoter(cfg.Orders.DeliveryFeeCents, cfg.Orders.FreeDeliveryOverCents)
	var taxCalc tax.Calculator
	if cfg.Orders.TaxRate > 0 {
		taxCalc = tax.NewPercentageCalculator(cfg.Orders.TaxRate, cfg.Orders.TaxName)
	} else {
		taxCalc = tax.NewNoTaxCalculator()
	}

	// ==========================================================================
	// Initialize services
	// ==========================================================================

	locationService := service.NewLocationService(store)
	userService := service.NewUserService(store, locationService)
	tokenService := service.NewTokenService(
		store,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenTTL)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenTTL)*time.Hour,
	)
	verificationService := service.NewEmailVerificationService(store, store, cfg.BaseURL)
	passwordResetService := service.NewPasswordResetService(store, store, cfg.BaseURL)
	chefService := service.NewChefService(store, store, locationService, fileStore, cfg.BaseURL)
	offeringService := service.NewOfferingService(store, aiProvider, fileStore)
	orderService := service.NewOrderService(store, store, billingProvider, quoter, taxCalc, logger, cfg.BaseURL)
	waitlistService := service.NewWaitlistService(store, locationService, cfg.BaseURL)

	tools := assistant.NewMarketplaceTools(store, aiProvider, groceryProvider, logger)
	chatService := assistant.NewService(aiProvider, tools.Registry(), logger)
	mealPlanService := service.NewMealPlanService(store, chatService, offeringService, logger)

	// ==========================================================================
	// Start background worker
	// ==========================================================================

	if cfg.Worker.Enabled {
		w := worker.NewWorker(store, worker.Services{
			Email:     emailService,
			Offerings: offeringService,
			MealPlans: mealPlanService,
			Waitlist:  waitlistService,
		}, notifier, businessMetrics, worker.Config{
			PollInterval:   time.Duration(cfg.Worker.PollIntervalMS) * time.Millisecond,
			MaxConcurrency: int(cfg.Worker.MaxConcurrency),
		}, logger)
		go func() {
			if err := w.Start(ctx); err != nil {
				logger.Error("worker stopped with error", "error", err)
			}
		}()
	} else {
		logger.Warn("Background worker disabled; emails, embeddings, and meal plans will queue without being processed")
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	metrics := middleware.NewMetrics("localplate")

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "development" {
		securityConfig.ContentSecurityPolicy = ""
		securityConfig.HSTSMaxAge = 0
	}

	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	authRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())

	sentryUser := func(ctx context.Context) *telemetry.UserInfo {
		user := middleware.GetUserFromContext(ctx)
		if user == nil {
			return nil
		}
		return &telemetry.UserInfo{ID: user.ID.String(), Email: user.Email}
	}

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		router.CORS(cfg.CORSAllowedOrigins),
		middleware.RequestID,
		middleware.WithClientIP(),
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		middleware.WithRequestLogger(logger),
		middleware.WithUser(tokenService),
		telemetry.SentryMiddleware(sentryUser),
		middleware.WithServerErrorAlerts(notifier),
	)

	// Metrics endpoint (protect in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		Auth:          api.NewAuthHandler(userService, tokenService, verificationService, passwordResetService, logger),
		Me:            api.NewMeHandler(userService, locationService, logger),
		Chefs:         api.NewChefHandler(chefService, logger),
		Offerings:     api.NewOfferingHandler(offeringService, chefService, logger),
		Orders:        api.NewOrderHandler(orderService, chefService, logger),
		Waitlist:      api.NewWaitlistHandler(waitlistService, logger),
		Locations:     api.NewLocationHandler(locationService, logger),
		Assistant:     api.NewAssistantHandler(chatService, mealPlanService, logger),
		AuthRateLimit: authRateLimiter.Middleware,
	})

	routes.RegisterAdminRoutes(r, routes.AdminDeps{
		Chefs:    adminhandler.NewChefReviewHandler(chefService, logger),
		Waitlist: adminhandler.NewWaitlistAdminHandler(store, logger),
		Orders:   adminhandler.NewOrderAdminHandler(orderService, logger),
		Imports:  adminhandler.NewImportStatusHandler(store, logger),
	})

	routes.RegisterWebhookRoutes(r, routes.WebhookDeps{
		Stripe: webhook.NewStripeHandler(billingProvider, orderService, store, notifier, logger),
	})

	// Local photo storage serves straight off disk; R2 fronts its own URL
	if cfg.Storage.Provider == "local" {
		r.Static(cfg.Storage.LocalURL, cfg.Storage.LocalPath)
	}

	// Unmatched paths get the JSON error envelope, not the stdlib 404 page
	r.NotFound(handler.NotFoundResponse)

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
