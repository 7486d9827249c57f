package http

import (
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/walletnames/registrar/internal/application/purchase"
	"github.com/walletnames/registrar/internal/application/purchase/chain"
	"github.com/walletnames/registrar/internal/application/purchase/processor"
	"github.com/walletnames/registrar/internal/application/purchase/usecases"
	"github.com/walletnames/registrar/internal/domain/registration"
	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/infrastructure/cache"
	"github.com/walletnames/registrar/internal/infrastructure/ratelimit"
	"github.com/walletnames/registrar/internal/infrastructure/repository"
	"github.com/walletnames/registrar/internal/interfaces/http/handlers"
	"github.com/walletnames/registrar/internal/interfaces/http/middleware"
	"github.com/walletnames/registrar/internal/shared/db"
	"github.com/walletnames/registrar/internal/shared/logger"
)

// Dependencies are the collaborators built by the server command.
// Redis and Notifier are optional.
type Dependencies struct {
	DB        *gorm.DB
	Redis     redis.UniversalClient
	Checker   chain.RegistrationChecker
	Processor processor.PaymentProcessor
	Notifier  usecases.ReviewNotifier
	Tokens    middleware.TokenVerifier
	Enforcer  middleware.PolicyEnforcer

	Purchase           usecases.PurchaseConfig
	Isolation          sql.IsolationLevel
	WalletCacheTTL     time.Duration
	RateLimitPerMinute int
	AllowedOrigins     []string

	Logger logger.Interface
}

type components struct {
	purchaseHandler *handlers.PurchaseHandler
	healthHandler   *handlers.HealthHandler
	auth            *middleware.AuthMiddleware
	permission      *middleware.PermissionMiddleware
	purchaseLimiter *middleware.RateLimiter
}

func wire(deps Dependencies) (*components, error) {
	log := deps.Logger

	var wallets wallet.Repository = repository.NewWalletRepository(deps.DB)
	if deps.Redis != nil && deps.WalletCacheTTL > 0 {
		wallets = cache.NewCachedWalletRepository(wallets, deps.Redis, deps.WalletCacheTTL, log.With("component", "wallet_cache"))
	}
	accounts := repository.NewAccountRepository(deps.DB, log.With("component", "account_repository"))
	payments := repository.NewPaymentRepository(deps.DB)
	balances := repository.NewBalanceRepository(deps.DB)

	ledger := purchase.NewLedger(
		db.NewTransactionManagerWithIsolation(deps.DB, deps.Isolation),
		accounts,
		payments,
		log.With("component", "ledger"),
	)

	purchaseUC := usecases.NewPurchaseUseCase(
		registration.NewValidator(registration.NewSyntax()),
		wallets,
		deps.Checker,
		purchase.NewPriceResolver(balances, deps.Purchase.MinAccountPrice),
		ledger,
		deps.Processor,
		deps.Notifier,
		log.With("component", "purchase"),
		deps.Purchase,
	)
	lookupUC := usecases.NewLookupChargeUseCase(payments, accounts, wallets, log.With("component", "lookup_charge"))

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return nil, err
	}

	c := &components{
		purchaseHandler: handlers.NewPurchaseHandler(purchaseUC, lookupUC, log),
		healthHandler:   handlers.NewHealthHandler(sqlDB),
		auth:            middleware.NewAuthMiddleware(deps.Tokens, log),
		permission:      middleware.NewPermissionMiddleware(deps.Enforcer, log),
	}

	if deps.Redis != nil && deps.RateLimitPerMinute > 0 {
		c.purchaseLimiter = middleware.NewRateLimiter(
			ratelimit.NewRedisRateLimiter(deps.Redis),
			"purchase",
			ratelimit.RateLimitConfig{RequestsPerMinute: deps.RateLimitPerMinute},
			log,
		)
	}
	return c, nil
}
