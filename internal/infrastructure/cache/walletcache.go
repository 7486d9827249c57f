package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/walletnames/registrar/internal/domain/wallet"
	"github.com/walletnames/registrar/internal/shared/logger"
)

const (
	walletKeyPrefix       = "wallet:ref:"
	defaultWalletTTL      = 60 * time.Second
	walletNullMarkerTTL   = 10 * time.Second
	fieldWalletID         = "id"
	fieldWalletName       = "name"
	fieldWalletLogo       = "logo_url"
	fieldDomainPrice      = "domain_price"
	fieldAccountPrice     = "account_price"
	fieldDomainSale       = "domain_sale_active"
	fieldAccountSale      = "account_sale_active"
	fieldWalletActive     = "active"
	fieldWalletNotify     = "notify_email"
	fieldWalletCreatedAt  = "created_at"
	fieldWalletUpdatedAt  = "updated_at"
	fieldWalletNullMarker = "_null"
)

// CachedWalletRepository is a read-through Redis cache in front of a
// wallet.Repository. Redis failures fall back to the wrapped repository.
type CachedWalletRepository struct {
	next   wallet.Repository
	client redis.UniversalClient
	ttl    time.Duration
	logger logger.Interface
}

var _ wallet.Repository = (*CachedWalletRepository)(nil)

func NewCachedWalletRepository(next wallet.Repository, client redis.UniversalClient, ttl time.Duration, logger logger.Interface) *CachedWalletRepository {
	if ttl <= 0 {
		ttl = defaultWalletTTL
	}
	return &CachedWalletRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedWalletRepository) key(code string) string {
	return walletKeyPrefix + code
}

func (c *CachedWalletRepository) GetByReferralCode(ctx context.Context, code string) (*wallet.Wallet, error) {
	w, found, err := c.get(ctx, code)
	if err != nil {
		c.logger.Warnw("wallet cache read failed", "error", err, "referral_code", code)
	} else if found {
		if w == nil {
			return nil, wallet.ErrWalletNotFound
		}
		return w, nil
	}

	w, err = c.next.GetByReferralCode(ctx, code)
	if errors.Is(err, wallet.ErrWalletNotFound) {
		c.setNullMarker(ctx, code)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	c.set(ctx, w)
	return w, nil
}

func (c *CachedWalletRepository) GetByID(ctx context.Context, id uint) (*wallet.Wallet, error) {
	return c.next.GetByID(ctx, id)
}

// Upsert writes through and drops the cached entry.
func (c *CachedWalletRepository) Upsert(ctx context.Context, w *wallet.Wallet) error {
	if err := c.next.Upsert(ctx, w); err != nil {
		return err
	}
	if err := c.client.Del(ctx, c.key(w.ReferralCode())).Err(); err != nil {
		c.logger.Warnw("failed to invalidate wallet cache", "error", err, "referral_code", w.ReferralCode())
	}
	return nil
}

// get reports found=true with a nil wallet for a cached not-found marker.
func (c *CachedWalletRepository) get(ctx context.Context, code string) (*wallet.Wallet, bool, error) {
	result, err := c.client.HGetAll(ctx, c.key(code)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get wallet from cache: %w", err)
	}
	if len(result) == 0 {
		return nil, false, nil
	}
	if result[fieldWalletNullMarker] == "1" {
		return nil, true, nil
	}

	id, err := strconv.ParseUint(result[fieldWalletID], 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt cached wallet id: %w", err)
	}
	domainPrice, err := decimal.NewFromString(result[fieldDomainPrice])
	if err != nil {
		return nil, false, fmt.Errorf("corrupt cached domain price: %w", err)
	}
	accountPrice, err := decimal.NewFromString(result[fieldAccountPrice])
	if err != nil {
		return nil, false, fmt.Errorf("corrupt cached account price: %w", err)
	}
	createdAt, _ := strconv.ParseInt(result[fieldWalletCreatedAt], 10, 64)
	updatedAt, _ := strconv.ParseInt(result[fieldWalletUpdatedAt], 10, 64)

	w := wallet.ReconstructWallet(
		uint(id),
		code,
		result[fieldWalletName],
		result[fieldWalletLogo],
		wallet.Pricing{
			DomainPrice:       domainPrice,
			AccountPrice:      accountPrice,
			DomainSaleActive:  result[fieldDomainSale] == "1",
			AccountSaleActive: result[fieldAccountSale] == "1",
		},
		result[fieldWalletActive] == "1",
		result[fieldWalletNotify],
		time.UnixMilli(createdAt).UTC(),
		time.UnixMilli(updatedAt).UTC(),
	)
	return w, true, nil
}

func (c *CachedWalletRepository) set(ctx context.Context, w *wallet.Wallet) {
	key := c.key(w.ReferralCode())
	p := w.Pricing()

	fields := map[string]interface{}{
		fieldWalletID:        w.ID(),
		fieldWalletName:      w.Name(),
		fieldWalletLogo:      w.LogoURL(),
		fieldDomainPrice:     p.DomainPrice.String(),
		fieldAccountPrice:    p.AccountPrice.String(),
		fieldDomainSale:      boolFlag(p.DomainSaleActive),
		fieldAccountSale:     boolFlag(p.AccountSaleActive),
		fieldWalletActive:    boolFlag(w.IsActive()),
		fieldWalletNotify:    w.NotifyEmail(),
		fieldWalletCreatedAt: w.CreatedAt().UnixMilli(),
		fieldWalletUpdatedAt: w.UpdatedAt().UnixMilli(),
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("failed to cache wallet", "error", err, "referral_code", w.ReferralCode())
	}
}

func (c *CachedWalletRepository) setNullMarker(ctx context.Context, code string) {
	key := c.key(code)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, fieldWalletNullMarker, "1")
	pipe.Expire(ctx, key, walletNullMarkerTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("failed to cache wallet null marker", "error", err, "referral_code", code)
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
