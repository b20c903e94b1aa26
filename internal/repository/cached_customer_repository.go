package repository

import (
	"context"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// CachedCustomerRepository decorates a CustomerRepository with Redis
// caching. Cache failures are logged and otherwise ignored; the primary
// store is always authoritative.
type CachedCustomerRepository struct {
	repo  CustomerRepository
	cache *RedisCacheRepository
	log   *logger.Logger
}

// NewCachedCustomerRepository creates a caching decorator around repo.
func NewCachedCustomerRepository(
	repo CustomerRepository,
	cache *RedisCacheRepository,
	log *logger.Logger,
) CustomerRepository {
	return &CachedCustomerRepository{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetAll returns the cached list when present, falling back to the
// primary store and repopulating the cache on a miss.
func (r *CachedCustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	cached, err := r.cache.GetCachedCustomerList(ctx)
	if err != nil {
		r.log.Warnw("Error getting customer list from cache", "error", err)
	}
	if cached != nil {
		r.log.Debugw("Customer list found in cache", "count", len(cached))
		return cached, nil
	}

	customers, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(customers) > 0 {
		if err := r.cache.CacheCustomerList(ctx, customers); err != nil {
			r.log.Warnw("Failed to cache customer list", "error", err)
		}
	}

	return customers, nil
}

// GetByID checks the cache first and falls back to the primary store.
func (r *CachedCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	cached, err := r.cache.GetCachedCustomer(ctx, id)
	if err != nil {
		r.log.Warnw("Error getting customer from cache", "error", err, "customerID", id)
	}
	if cached != nil {
		return cached, nil
	}

	customer, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.CacheCustomer(ctx, customer); err != nil {
		r.log.Warnw("Failed to cache customer after fetching", "error", err, "customerID", id)
	}

	return customer, nil
}

// Create writes through to the primary store and invalidates the list.
func (r *CachedCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if err := r.repo.Create(ctx, customer); err != nil {
		return err
	}

	if err := r.cache.CacheCustomer(ctx, customer); err != nil {
		r.log.Warnw("Failed to cache customer after creation", "error", err, "customerID", customer.ID)
	}
	if err := r.cache.InvalidateCustomerList(ctx); err != nil {
		r.log.Warnw("Failed to invalidate customer list cache", "error", err)
	}

	return nil
}

// UpdateStatus writes through to the primary store and drops the stale
// cache entries.
func (r *CachedCustomerRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if err := r.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if err := r.cache.DeleteCachedCustomer(ctx, id); err != nil {
		r.log.Warnw("Failed to drop cached customer after status update", "error", err, "customerID", id)
	}
	if err := r.cache.InvalidateCustomerList(ctx); err != nil {
		r.log.Warnw("Failed to invalidate customer list cache after status update", "error", err)
	}

	return nil
}
