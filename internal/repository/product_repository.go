package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

const ProductListCacheTTL = 2 * time.Minute

// ProductRepository handles persistence for products
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uuid.UUID) (*models.Product, error)
	List(filters *models.ProductFilters, page, limit int) ([]models.Product, int64, error)
	Categories() ([]string, error)
	RecordSearch(history *models.SearchHistory) error
}

type productRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB, redisClient *redis.Client) ProductRepository {
	return &productRepository{db: db, redis: redisClient}
}

func (r *productRepository) listCacheKey(filters *models.ProductFilters, page, limit int) string {
	raw, _ := json.Marshal(struct {
		Filters *models.ProductFilters
		Page    int
		Limit   int
	}{filters, page, limit})
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("catalog:products:list:%s", hex.EncodeToString(sum[:8]))
}

func (r *productRepository) invalidateLists() {
	if r.redis == nil {
		return
	}
	ctx := context.Background()
	iter := r.redis.Scan(ctx, 0, "catalog:products:list:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = r.redis.Del(ctx, iter.Val()).Err()
	}
}

// Create inserts a new product
func (r *productRepository) Create(product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	if product.Availability == "" {
		product.Availability = models.AvailabilityInStock
	}

	err := r.db.Create(product).Error
	if err == nil {
		r.invalidateLists()
	}
	return err
}

// GetByID retrieves a product with its manufacturer
func (r *productRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ?", id).Preload("Manufacturer").First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

type cachedProductList struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// List retrieves products with filters and their manufacturer relation,
// newest first
func (r *productRepository) List(filters *models.ProductFilters, page, limit int) ([]models.Product, int64, error) {
	ctx := context.Background()
	cacheKey := r.listCacheKey(filters, page, limit)

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedProductList
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Total, nil
			}
		}
	}

	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{})
	query = applyProductFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Manufacturer").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(cachedProductList{Products: products, Total: total}); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductListCacheTTL)
		}
	}

	return products, total, nil
}

// Categories returns the distinct non-empty product categories
func (r *productRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Product{}).
		Distinct("category").
		Where("category IS NOT NULL AND category != ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// RecordSearch appends a search audit row. Best effort: failures are the
// caller's to log, never to surface.
func (r *productRepository) RecordSearch(history *models.SearchHistory) error {
	if history.ID == uuid.Nil {
		history.ID = uuid.New()
	}
	history.CreatedAt = time.Now()
	return r.db.Create(history).Error
}

// applyProductFilters translates the filter set into query predicates.
// String bounds are parsed here; an unparseable bound disables itself.
func applyProductFilters(query *gorm.DB, filters *models.ProductFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.ManufacturerID != "" && filters.ManufacturerID != "all" {
		if id, err := uuid.Parse(filters.ManufacturerID); err == nil {
			query = query.Where("manufacturer_id = ?", id)
		}
	}
	if filters.Category != "" && filters.Category != "all" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Availability != "" && filters.Availability != "all" {
		query = query.Where("availability = ?", filters.Availability)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"name ILIKE ? OR description ILIKE ? OR sku ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filters.MinPrice != "" {
		if min, err := strconv.ParseFloat(filters.MinPrice, 64); err == nil {
			query = query.Where("price >= ?", min)
		}
	}
	if filters.MaxPrice != "" {
		if max, err := strconv.ParseFloat(filters.MaxPrice, 64); err == nil {
			query = query.Where("price <= ?", max)
		}
	}

	if filters.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filters.StartDate); err == nil {
			query = query.Where("created_at >= ?", start)
		}
	}
	if filters.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filters.EndDate); err == nil {
			query = query.Where("created_at <= ?", end.Add(24*time.Hour-time.Nanosecond))
		}
	}

	return query
}
