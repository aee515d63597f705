package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// ProductService handles product business logic
type ProductService interface {
	List(filters *models.ProductFilters, page, limit int) ([]models.Product, *models.PaginationInfo, error)
	Get(id uuid.UUID) (*models.Product, error)
	Create(req *models.CreateProductRequest) (*models.Product, error)
	Categories() ([]string, error)
}

type productService struct {
	repo             repository.ProductRepository
	manufacturerRepo repository.ManufacturerRepository
	logger           *logrus.Logger
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, manufacturerRepo repository.ManufacturerRepository, logger *logrus.Logger) ProductService {
	return &productService{repo: repo, manufacturerRepo: manufacturerRepo, logger: logger}
}

// List returns products matching the filters, newest first. Searches are
// recorded to the audit table; a failed audit write never fails the query.
func (s *productService) List(filters *models.ProductFilters, page, limit int) ([]models.Product, *models.PaginationInfo, error) {
	products, total, err := s.repo.List(filters, page, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list products")
		return nil, nil, err
	}

	if filters != nil && strings.TrimSpace(filters.Search) != "" {
		s.recordSearch(filters, int(total))
	}

	return products, buildPagination(page, limit, total), nil
}

func (s *productService) recordSearch(filters *models.ProductFilters, resultCount int) {
	snapshot := models.JSON{
		"manufacturerId": filters.ManufacturerID,
		"category":       filters.Category,
		"availability":   filters.Availability,
		"minPrice":       filters.MinPrice,
		"maxPrice":       filters.MaxPrice,
	}
	history := &models.SearchHistory{
		Query:       filters.Search,
		ResultCount: resultCount,
		Filters:     &snapshot,
	}
	if filters.ManufacturerID != "" {
		if id, err := uuid.Parse(filters.ManufacturerID); err == nil {
			history.ManufacturerID = &id
		}
	}
	if err := s.repo.RecordSearch(history); err != nil {
		s.logger.WithError(err).Warn("Failed to record search history")
	}
}

// Get returns a product with its manufacturer
func (s *productService) Get(id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("product %s not found", id)
		}
		return nil, err
	}
	return product, nil
}

// Create validates and inserts a new product
func (s *productService) Create(req *models.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationError("name is required")
	}
	if strings.TrimSpace(req.SKU) == "" {
		return nil, validationError("sku is required")
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, validationError("price cannot be negative")
	}

	manufacturerID, err := uuid.Parse(req.ManufacturerID)
	if err != nil {
		return nil, validationError("manufacturerId must be a valid uuid")
	}
	if _, err := s.manufacturerRepo.GetByID(manufacturerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("manufacturer %s not found", manufacturerID)
		}
		return nil, err
	}

	availability := req.Availability
	if availability == "" {
		availability = models.AvailabilityInStock
	}

	product := &models.Product{
		ManufacturerID: manufacturerID,
		Name:           strings.TrimSpace(req.Name),
		SKU:            strings.TrimSpace(req.SKU),
		Category:       req.Category,
		Price:          req.Price,
		Availability:   availability,
		Description:    req.Description,
		Specifications: req.Specifications,
		ProductURL:     req.ProductURL,
	}

	if err := s.repo.Create(product); err != nil {
		s.logger.WithError(err).Error("Failed to create product")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"product_id":      product.ID,
		"manufacturer_id": manufacturerID,
	}).Info("Product created")

	return product, nil
}

// Categories returns the distinct product categories
func (s *productService) Categories() ([]string, error) {
	return s.repo.Categories()
}
