package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// Cache TTL constants
const (
	ManufacturerCacheTTL     = 5 * time.Minute
	ManufacturerListCacheTTL = 2 * time.Minute
)

// ManufacturerRepository handles persistence for manufacturers
type ManufacturerRepository interface {
	Create(manufacturer *models.Manufacturer) error
	GetByID(id uuid.UUID) (*models.Manufacturer, error)
	GetByIDWithProducts(id uuid.UUID) (*models.Manufacturer, error)
	GetByWebsite(website string) (*models.Manufacturer, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
	List(filters *models.ManufacturerFilters, page, limit int) ([]models.Manufacturer, int64, error)
	CountProducts(id uuid.UUID) (int64, error)

	// ClaimExtraction conditionally moves a manufacturer into in_progress.
	// Returns false when another extraction already holds the claim.
	ClaimExtraction(id uuid.UUID) (bool, error)
	FinishExtraction(id uuid.UUID, extractionStatus models.ExtractionStatus, status models.ManufacturerStatus) error
	CreateExtractedProducts(manufacturerID uuid.UUID, products []*models.Product) error
}

type manufacturerRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewManufacturerRepository creates a new manufacturer repository
func NewManufacturerRepository(db *gorm.DB, redisClient *redis.Client) ManufacturerRepository {
	return &manufacturerRepository{db: db, redis: redisClient}
}

func (r *manufacturerRepository) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("catalog:manufacturer:%s", id.String())
}

func (r *manufacturerRepository) invalidate(id uuid.UUID) {
	if r.redis == nil {
		return
	}
	ctx := context.Background()
	_ = r.redis.Del(ctx, r.cacheKey(id)).Err()
	// List caches are keyed by filter hash; drop them all on any write.
	iter := r.redis.Scan(ctx, 0, "catalog:manufacturers:list:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = r.redis.Del(ctx, iter.Val()).Err()
	}
}

// invalidateProductLists drops cached product lists after writes that touch
// the products table (cascade delete, extraction inserts)
func (r *manufacturerRepository) invalidateProductLists() {
	if r.redis == nil {
		return
	}
	ctx := context.Background()
	iter := r.redis.Scan(ctx, 0, "catalog:products:list:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = r.redis.Del(ctx, iter.Val()).Err()
	}
}

// Create inserts a new manufacturer
func (r *manufacturerRepository) Create(manufacturer *models.Manufacturer) error {
	if manufacturer.ID == uuid.Nil {
		manufacturer.ID = uuid.New()
	}
	manufacturer.CreatedAt = time.Now()
	manufacturer.UpdatedAt = time.Now()

	err := r.db.Create(manufacturer).Error
	if err == nil {
		r.invalidate(manufacturer.ID)
	}
	return err
}

// GetByID retrieves a manufacturer by ID with caching
func (r *manufacturerRepository) GetByID(id uuid.UUID) (*models.Manufacturer, error) {
	ctx := context.Background()

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, r.cacheKey(id)).Result(); err == nil {
			var cached models.Manufacturer
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var manufacturer models.Manufacturer
	if err := r.db.Where("id = ?", id).First(&manufacturer).Error; err != nil {
		return nil, err
	}

	if count, err := r.CountProducts(id); err == nil {
		manufacturer.ProductCount = count
	}

	if r.redis != nil {
		if data, err := json.Marshal(manufacturer); err == nil {
			r.redis.Set(ctx, r.cacheKey(id), data, ManufacturerCacheTTL)
		}
	}

	return &manufacturer, nil
}

// GetByIDWithProducts retrieves a manufacturer with its product catalog,
// newest products first
func (r *manufacturerRepository) GetByIDWithProducts(id uuid.UUID) (*models.Manufacturer, error) {
	var manufacturer models.Manufacturer
	err := r.db.Where("id = ?", id).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&manufacturer).Error
	if err != nil {
		return nil, err
	}
	manufacturer.ProductCount = int64(len(manufacturer.Products))
	return &manufacturer, nil
}

// GetByWebsite retrieves a manufacturer by its unique website
func (r *manufacturerRepository) GetByWebsite(website string) (*models.Manufacturer, error) {
	var manufacturer models.Manufacturer
	if err := r.db.Where("website = ?", website).First(&manufacturer).Error; err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

// Update applies a partial update
func (r *manufacturerRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Manufacturer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidate(id)
	return nil
}

// Delete soft deletes a manufacturer and its products
func (r *manufacturerRepository) Delete(id uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manufacturer_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Manufacturer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == nil {
		r.invalidate(id)
		r.invalidateProductLists()
	}
	return err
}

type cachedManufacturerList struct {
	Manufacturers []models.Manufacturer `json:"manufacturers"`
	Total         int64                 `json:"total"`
}

func (r *manufacturerRepository) listCacheKey(filters *models.ManufacturerFilters, page, limit int) string {
	raw, _ := json.Marshal(struct {
		Filters *models.ManufacturerFilters
		Page    int
		Limit   int
	}{filters, page, limit})
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("catalog:manufacturers:list:%s", hex.EncodeToString(sum[:8]))
}

// List retrieves manufacturers with filters, newest first, each annotated
// with its product count
func (r *manufacturerRepository) List(filters *models.ManufacturerFilters, page, limit int) ([]models.Manufacturer, int64, error) {
	ctx := context.Background()
	cacheKey := r.listCacheKey(filters, page, limit)

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedManufacturerList
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Manufacturers, cached.Total, nil
			}
		}
	}

	var manufacturers []models.Manufacturer
	var total int64

	query := r.db.Model(&models.Manufacturer{})
	query = applyManufacturerFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&manufacturers).Error; err != nil {
		return nil, 0, err
	}

	if len(manufacturers) > 0 {
		ids := make([]uuid.UUID, 0, len(manufacturers))
		for _, m := range manufacturers {
			ids = append(ids, m.ID)
		}

		var counts []struct {
			ManufacturerID uuid.UUID
			Count          int64
		}
		if err := r.db.Model(&models.Product{}).
			Select("manufacturer_id, COUNT(*) as count").
			Where("manufacturer_id IN ?", ids).
			Group("manufacturer_id").
			Scan(&counts).Error; err == nil {
			countMap := make(map[uuid.UUID]int64, len(counts))
			for _, c := range counts {
				countMap[c.ManufacturerID] = c.Count
			}
			for i := range manufacturers {
				manufacturers[i].ProductCount = countMap[manufacturers[i].ID]
			}
		}
	}

	if r.redis != nil {
		if data, err := json.Marshal(cachedManufacturerList{Manufacturers: manufacturers, Total: total}); err == nil {
			r.redis.Set(ctx, cacheKey, data, ManufacturerListCacheTTL)
		}
	}

	return manufacturers, total, nil
}

// CountProducts returns the product count for a manufacturer
func (r *manufacturerRepository) CountProducts(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("manufacturer_id = ?", id).Count(&count).Error
	return count, err
}

// ClaimExtraction performs a compare-and-set on extraction_status so two
// concurrent triggers cannot both start an extraction for the same
// manufacturer. Re-entry from failed is permitted.
func (r *manufacturerRepository) ClaimExtraction(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Manufacturer{}).
		Where("id = ? AND extraction_status IN ?", id, []models.ExtractionStatus{
			models.ExtractionStatusPending,
			models.ExtractionStatusFailed,
		}).
		Updates(map[string]interface{}{
			"extraction_status": models.ExtractionStatusInProgress,
			"status":            models.ManufacturerStatusPending,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		r.invalidate(id)
	}
	return result.RowsAffected > 0, nil
}

// FinishExtraction records the terminal state of an extraction run
func (r *manufacturerRepository) FinishExtraction(id uuid.UUID, extractionStatus models.ExtractionStatus, status models.ManufacturerStatus) error {
	err := r.db.Model(&models.Manufacturer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"extraction_status": extractionStatus,
			"status":            status,
			"updated_at":        time.Now(),
		}).Error
	if err == nil {
		r.invalidate(id)
	}
	return err
}

// CreateExtractedProducts persists the products returned by a pipeline run
// in a single transaction
func (r *manufacturerRepository) CreateExtractedProducts(manufacturerID uuid.UUID, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, product := range products {
			product.ManufacturerID = manufacturerID
			if product.ID == uuid.Nil {
				product.ID = uuid.New()
			}
			product.CreatedAt = now
			product.UpdatedAt = now
			if err := tx.Create(product).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		r.invalidate(manufacturerID)
		r.invalidateProductLists()
	}
	return err
}

// applyManufacturerFilters translates the filter set into query predicates.
// The "all" sentinel and empty values disable a selector.
func applyManufacturerFilters(query *gorm.DB, filters *models.ManufacturerFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.Status != "" && filters.Status != "all" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Category != "" && filters.Category != "all" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"name ILIKE ? OR website ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	return query
}
