package cache

import (
	"context"
	"time"

	"github.com/travesia/voucher-admin/internal/domain/entity"
)

// Resource keys shared by the form, table and delete flows
const (
	KeyVouchers   = "vouchers"
	KeyBanks      = "banks"
	KeyAffiliates = "affiliates"
)

// VoucherCache is the typed read-through cache for the voucher list
type VoucherCache struct {
	store *Store
}

// NewVoucherCache registers the voucher list under its staleness window
func NewVoucherCache(store *Store, ttl time.Duration, fetch func(ctx context.Context) ([]entity.Voucher, error)) *VoucherCache {
	store.Register(KeyVouchers, ttl, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	return &VoucherCache{store: store}
}

// Get returns the cached voucher list, refetching when stale
func (c *VoucherCache) Get(ctx context.Context) ([]entity.Voucher, error) {
	v, err := c.store.Get(ctx, KeyVouchers)
	if err != nil {
		return nil, err
	}
	return v.([]entity.Voucher), nil
}

// Invalidate forces the next Get to refetch
func (c *VoucherCache) Invalidate() {
	c.store.Invalidate(KeyVouchers)
}

// BankCache is the typed read-through cache for the bank list
type BankCache struct {
	store *Store
}

// NewBankCache registers the bank list under its staleness window
func NewBankCache(store *Store, ttl time.Duration, fetch func(ctx context.Context) ([]entity.Bank, error)) *BankCache {
	store.Register(KeyBanks, ttl, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	return &BankCache{store: store}
}

// Get returns the cached bank list, refetching when stale
func (c *BankCache) Get(ctx context.Context) ([]entity.Bank, error) {
	v, err := c.store.Get(ctx, KeyBanks)
	if err != nil {
		return nil, err
	}
	return v.([]entity.Bank), nil
}

// Invalidate forces the next Get to refetch
func (c *BankCache) Invalidate() {
	c.store.Invalidate(KeyBanks)
}

// AffiliateCache is the typed read-through cache for the affiliate list
type AffiliateCache struct {
	store *Store
}

// NewAffiliateCache registers the affiliate list under its staleness window
func NewAffiliateCache(store *Store, ttl time.Duration, fetch func(ctx context.Context) ([]entity.Affiliate, error)) *AffiliateCache {
	store.Register(KeyAffiliates, ttl, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	return &AffiliateCache{store: store}
}

// Get returns the cached affiliate list, refetching when stale
func (c *AffiliateCache) Get(ctx context.Context) ([]entity.Affiliate, error) {
	v, err := c.store.Get(ctx, KeyAffiliates)
	if err != nil {
		return nil, err
	}
	return v.([]entity.Affiliate), nil
}

// Invalidate forces the next Get to refetch
func (c *AffiliateCache) Invalidate() {
	c.store.Invalidate(KeyAffiliates)
}
