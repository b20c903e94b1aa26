package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

const (
	customerKeyPrefix = "customer:"
	customerListKey   = "customers:all"

	defaultCacheTTL = 15 * time.Minute
)

// RedisCacheRepository caches customer records in Redis. It is an
// optional accelerator: every method failure is survivable and the
// callers fall back to the primary store.
type RedisCacheRepository struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisCacheRepository connects to Redis and verifies the connection.
func NewRedisCacheRepository(addr, password string, db int, log *logger.Logger) (*RedisCacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Errorw("Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", addr)
	return &RedisCacheRepository{
		client: client,
		log:    log,
	}, nil
}

// Close closes the Redis connection.
func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}

// CacheCustomer stores one customer record under its ID key.
func (r *RedisCacheRepository) CacheCustomer(ctx context.Context, customer *domain.Customer) error {
	key := customerKeyPrefix + strconv.FormatInt(customer.ID, 10)

	data, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer: %w", err)
	}

	if err := r.client.Set(ctx, key, data, defaultCacheTTL).Err(); err != nil {
		r.log.Errorw("Failed to cache customer in Redis", "error", err, "customerID", customer.ID)
		return fmt.Errorf("failed to cache customer: %w", err)
	}

	return nil
}

// GetCachedCustomer returns a cached customer, or nil on a cache miss.
func (r *RedisCacheRepository) GetCachedCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	key := customerKeyPrefix + strconv.FormatInt(id, 10)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer from cache: %w", err)
	}

	var customer domain.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached customer: %w", err)
	}

	return &customer, nil
}

// DeleteCachedCustomer drops one customer from the cache.
func (r *RedisCacheRepository) DeleteCachedCustomer(ctx context.Context, id int64) error {
	key := customerKeyPrefix + strconv.FormatInt(id, 10)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete customer from cache: %w", err)
	}
	return nil
}

// CacheCustomerList stores the full customer list.
func (r *RedisCacheRepository) CacheCustomerList(ctx context.Context, customers []domain.Customer) error {
	data, err := json.Marshal(customers)
	if err != nil {
		return fmt.Errorf("failed to marshal customer list: %w", err)
	}

	if err := r.client.Set(ctx, customerListKey, data, defaultCacheTTL).Err(); err != nil {
		r.log.Errorw("Failed to cache customer list in Redis", "error", err)
		return fmt.Errorf("failed to cache customer list: %w", err)
	}

	return nil
}

// GetCachedCustomerList returns the cached list, or nil on a cache miss.
func (r *RedisCacheRepository) GetCachedCustomerList(ctx context.Context) ([]domain.Customer, error) {
	data, err := r.client.Get(ctx, customerListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer list from cache: %w", err)
	}

	var customers []domain.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached customer list: %w", err)
	}

	return customers, nil
}

// InvalidateCustomerList drops the cached list after a write.
func (r *RedisCacheRepository) InvalidateCustomerList(ctx context.Context) error {
	if err := r.client.Del(ctx, customerListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate customer list cache: %w", err)
	}
	return nil
}
