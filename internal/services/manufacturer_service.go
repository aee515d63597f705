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

// ManufacturerService handles manufacturer business logic
type ManufacturerService interface {
	List(filters *models.ManufacturerFilters, page, limit int) ([]models.Manufacturer, *models.PaginationInfo, error)
	Get(id uuid.UUID) (*models.Manufacturer, error)
	Create(req *models.CreateManufacturerRequest) (*models.Manufacturer, error)
	Update(id uuid.UUID, req *models.UpdateManufacturerRequest) (*models.Manufacturer, error)
	Delete(id uuid.UUID) error
	ExtractionStatus(id uuid.UUID) (*models.ExtractionStatusData, error)
}

type manufacturerService struct {
	repo   repository.ManufacturerRepository
	logger *logrus.Logger
}

// NewManufacturerService creates a new manufacturer service
func NewManufacturerService(repo repository.ManufacturerRepository, logger *logrus.Logger) ManufacturerService {
	return &manufacturerService{repo: repo, logger: logger}
}

// List returns manufacturers matching the filters, newest first
func (s *manufacturerService) List(filters *models.ManufacturerFilters, page, limit int) ([]models.Manufacturer, *models.PaginationInfo, error) {
	manufacturers, total, err := s.repo.List(filters, page, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list manufacturers")
		return nil, nil, err
	}
	return manufacturers, buildPagination(page, limit, total), nil
}

// Get returns a manufacturer with its product catalog
func (s *manufacturerService) Get(id uuid.UUID) (*models.Manufacturer, error) {
	manufacturer, err := s.repo.GetByIDWithProducts(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("manufacturer %s not found", id)
		}
		return nil, err
	}
	return manufacturer, nil
}

// Create validates and inserts a new manufacturer. An existing website is a
// conflict and leaves the existing row untouched.
func (s *manufacturerService) Create(req *models.CreateManufacturerRequest) (*models.Manufacturer, error) {
	name := strings.TrimSpace(req.Name)
	website := strings.TrimSpace(req.Website)
	if name == "" {
		return nil, validationError("name is required")
	}
	if website == "" {
		return nil, validationError("website is required")
	}

	if existing, err := s.repo.GetByWebsite(website); err == nil && existing != nil {
		return nil, conflictError("manufacturer with website %s already exists", website)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	manufacturer := &models.Manufacturer{
		Name:             name,
		Website:          website,
		Category:         req.Category,
		Location:         req.Location,
		Status:           models.ManufacturerStatusPending,
		ExtractionStatus: models.ExtractionStatusPending,
	}

	if err := s.repo.Create(manufacturer); err != nil {
		s.logger.WithError(err).Error("Failed to create manufacturer")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"manufacturer_id": manufacturer.ID,
		"website":         manufacturer.Website,
	}).Info("Manufacturer created")

	return manufacturer, nil
}

// Update applies a partial update
func (s *manufacturerService) Update(id uuid.UUID, req *models.UpdateManufacturerRequest) (*models.Manufacturer, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validationError("name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Website != nil {
		website := strings.TrimSpace(*req.Website)
		if website == "" {
			return nil, validationError("website cannot be empty")
		}
		if existing, err := s.repo.GetByWebsite(website); err == nil && existing != nil && existing.ID != id {
			return nil, conflictError("manufacturer with website %s already exists", website)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["website"] = website
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.PipelineID != nil {
		updates["pipeline_id"] = *req.PipelineID
	}

	if len(updates) == 0 {
		return nil, validationError("no fields to update")
	}

	if err := s.repo.Update(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("manufacturer %s not found", id)
		}
		return nil, err
	}

	return s.repo.GetByID(id)
}

// Delete removes a manufacturer and cascades to its products
func (s *manufacturerService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("manufacturer %s not found", id)
		}
		s.logger.WithError(err).WithField("manufacturer_id", id).Error("Failed to delete manufacturer")
		return err
	}
	s.logger.WithField("manufacturer_id", id).Info("Manufacturer deleted")
	return nil
}

// ExtractionStatus reports the extraction state and current product count
func (s *manufacturerService) ExtractionStatus(id uuid.UUID) (*models.ExtractionStatusData, error) {
	manufacturer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("manufacturer %s not found", id)
		}
		return nil, err
	}

	count, err := s.repo.CountProducts(id)
	if err != nil {
		return nil, err
	}

	return &models.ExtractionStatusData{
		Status:           manufacturer.Status,
		ExtractionStatus: manufacturer.ExtractionStatus,
		ProductCount:     count,
	}, nil
}

// buildPagination derives the pagination envelope from a total row count
func buildPagination(page, limit int, total int64) *models.PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
