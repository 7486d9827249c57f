package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/application/purchase/usecases"
	"github.com/walletnames/registrar/internal/infrastructure/auth"
	"github.com/walletnames/registrar/internal/infrastructure/blockchain"
	"github.com/walletnames/registrar/internal/infrastructure/config"
	"github.com/walletnames/registrar/internal/infrastructure/database"
	"github.com/walletnames/registrar/internal/infrastructure/email"
	"github.com/walletnames/registrar/internal/infrastructure/migration"
	"github.com/walletnames/registrar/internal/infrastructure/payment"
	"github.com/walletnames/registrar/internal/infrastructure/permission"
	httpRouter "github.com/walletnames/registrar/internal/interfaces/http"
	"github.com/walletnames/registrar/internal/shared/constants"
	"github.com/walletnames/registrar/internal/shared/logger"
	"github.com/walletnames/registrar/internal/shared/services/markdown"
	"github.com/walletnames/registrar/internal/shared/version"
)

var (
	env         string
	configPath  string
	autoMigrate bool
	verbose     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the registrar HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log call sites at every level")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", env,
		"version", version.String(),
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(cfg, log); err != nil {
		return err
	}

	deps, cleanup, err := buildDependencies(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	router, err := httpRouter.NewRouter(*deps)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode,
			"processor", deps.Processor.ID())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if autoMigrate || cfg.Database.AutoMigrate {
		if env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		if err := migration.NewManager(&cfg.Database, log).Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	current, err := migration.NewGooseStrategy(cfg.Database.DriverName(), log).GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", current)
	return nil
}

// buildDependencies creates the external collaborators of the purchase flow.
func buildDependencies(cfg *config.Config, log logger.Interface) (*httpRouter.Dependencies, func(), error) {
	minPrice, err := decimal.NewFromString(cfg.Purchase.MinAccountPrice)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid purchase.min_account_price %q: %w", cfg.Purchase.MinAccountPrice, err)
	}

	registry := processor.NewRegistry(
		payment.NewCoinbaseProcessor(payment.CoinbaseConfig{
			BaseURL:    cfg.Coinbase.BaseURL,
			APIKey:     cfg.Coinbase.APIKey,
			APIVersion: cfg.Coinbase.APIVersion,
			Timeout:    time.Duration(cfg.Coinbase.TimeoutSeconds) * time.Second,
		}, log.With("component", "coinbase")),
		payment.NewManualProcessor(log.With("component", "manual_processor")),
	)
	proc, err := registry.Get(cfg.Purchase.PaymentProcessor)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid purchase.payment_processor: %w", err)
	}

	enforcer, err := permission.NewEnforcer(database.Get(), cfg.Permission.ModelPath, log.With("component", "permission"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize permissions: %w", err)
	}
	if err := enforcer.SeedDefaults(); err != nil {
		return nil, nil, fmt.Errorf("failed to seed default permissions: %w", err)
	}

	deps := &httpRouter.Dependencies{
		DB: database.Get(),
		Checker: blockchain.NewRegistryChecker(
			cfg.Chain.Endpoint,
			cfg.Chain.APIKey,
			time.Duration(cfg.Chain.TimeoutSeconds)*time.Second,
			log.With("component", "registry_checker"),
		),
		Processor: proc,
		Tokens:    auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer),
		Enforcer:  enforcer,
		Purchase: usecases.PurchaseConfig{
			DefaultReferralCode: cfg.Purchase.DefaultReferralCode,
			MinAccountPrice:     minPrice,
			ProcessorID:         proc.ID(),
		},
		Isolation:          cfg.Database.IsolationLevel(),
		WalletCacheTTL:     time.Duration(cfg.Purchase.WalletCacheTTLSeconds) * time.Second,
		RateLimitPerMinute: cfg.Purchase.RateLimitPerMinute,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		Logger:             log,
	}

	if cfg.Email.SMTPHost != "" && cfg.Email.FromAddress != "" {
		mailer := email.NewSMTPMailer(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		})
		deps.Notifier = email.NewReviewNotifier(mailer, markdown.NewRenderer(), log.With("component", "review_notifier"))
	} else {
		log.Warnw("smtp not configured, review notifications disabled")
	}

	cleanup := func() {}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warnw("redis unavailable, wallet cache and rate limiting disabled", "error", err, "address", cfg.Redis.GetAddr())
		_ = redisClient.Close()
	} else {
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
		deps.Redis = redisClient
		cleanup = func() { _ = redisClient.Close() }
	}

	return deps, cleanup, nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
