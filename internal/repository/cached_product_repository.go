package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"product-catalog/internal/domain/entity"
	domainRepo "product-catalog/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const productCacheKeyPrefix = "product:"

// cachedProduct is the Redis representation of a product.
type cachedProduct struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// cachedProductRepository serves FindByID from Redis and invalidates the key
// after every committed write. Redis failures fall through to the inner store.
type cachedProductRepository struct {
	inner domainRepo.ProductRepository
	redis *redis.Client
	ttl   time.Duration
	log   *logrus.Logger
}

func NewCachedProductRepository(
	inner domainRepo.ProductRepository,
	redisClient *redis.Client,
	ttl time.Duration,
	log *logrus.Logger,
) domainRepo.ProductRepository {
	return &cachedProductRepository{
		inner: inner,
		redis: redisClient,
		ttl:   ttl,
		log:   log,
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("%s%d", productCacheKeyPrefix, id)
}

func (r *cachedProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := r.inner.Create(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.ID)
	return nil
}

func (r *cachedProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	return r.inner.FindAll(ctx)
}

func (r *cachedProductRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	key := productCacheKey(id)

	raw, err := r.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedProduct
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &entity.Product{ID: cached.ID, Name: cached.Name, Price: cached.Price}, nil
		}
		r.log.WithContext(ctx).Warnf("Discarding corrupt cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		r.log.WithContext(ctx).Warnf("Failed to read product cache: %+v", err)
	}

	product, err := r.inner.FindByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	payload, err := json.Marshal(cachedProduct{ID: product.ID, Name: product.Name, Price: product.Price})
	if err == nil {
		err = r.redis.Set(ctx, key, payload, r.ttl).Err()
	}
	if err != nil {
		r.log.WithContext(ctx).Warnf("Failed to fill product cache: %+v", err)
	}

	return product, nil
}

func (r *cachedProductRepository) Update(ctx context.Context, product *entity.Product) (int64, error) {
	affected, err := r.inner.Update(ctx, product)
	if err != nil {
		return affected, err
	}
	r.invalidate(ctx, product.ID)
	return affected, nil
}

func (r *cachedProductRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.inner.Delete(ctx, id)
	if err != nil {
		return affected, err
	}
	r.invalidate(ctx, id)
	return affected, nil
}

// invalidate runs after the store commit and ignores caller cancellation.
func (r *cachedProductRepository) invalidate(ctx context.Context, id int64) {
	ctx = context.WithoutCancel(ctx)
	if err := r.redis.Del(ctx, productCacheKey(id)).Err(); err != nil {
		r.log.WithContext(ctx).Warnf("Failed to invalidate product cache %d: %+v", id, err)
	}
}
