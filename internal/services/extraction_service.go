package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog-service/internal/clients"
	"catalog-service/internal/events"
	"catalog-service/internal/metrics"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// ExtractionService runs the product extraction workflow
type ExtractionService interface {
	Trigger(ctx context.Context, id uuid.UUID, req *models.ExtractRequest) (*models.ExtractResponse, error)
}

type extractionService struct {
	repo       repository.ManufacturerRepository
	source     clients.PipelineDataSource
	publisher  *events.Publisher
	pipelineID string
	logger     *logrus.Logger
}

// NewExtractionService creates a new extraction service. A nil source means
// no pipeline provider is configured; triggers fail gracefully.
func NewExtractionService(
	repo repository.ManufacturerRepository,
	source clients.PipelineDataSource,
	publisher *events.Publisher,
	pipelineID string,
	logger *logrus.Logger,
) ExtractionService {
	return &extractionService{
		repo:       repo,
		source:     source,
		publisher:  publisher,
		pipelineID: pipelineID,
		logger:     logger,
	}
}

// Trigger starts an extraction for a manufacturer. The caller must confirm
// explicitly; the in_progress claim is a conditional update so concurrent
// triggers cannot both start a run.
func (s *extractionService) Trigger(ctx context.Context, id uuid.UUID, req *models.ExtractRequest) (*models.ExtractResponse, error) {
	if req == nil || !req.Confirmed {
		return nil, validationError("extraction must be explicitly confirmed")
	}

	manufacturer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("manufacturer %s not found", id)
		}
		return nil, err
	}

	if s.source == nil {
		return nil, fmt.Errorf("%w: pipeline API key not configured", ErrConfiguration)
	}

	claimed, err := s.repo.ClaimExtraction(id)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, conflictError("extraction already in progress for manufacturer %s", id)
	}

	log := s.logger.WithFields(logrus.Fields{
		"manufacturer_id": id,
		"website":         manufacturer.Website,
	})
	log.Info("Extraction started")

	s.publisher.Publish(events.SubjectExtractionStarted, events.ExtractionEvent{
		ManufacturerID:   id.String(),
		ManufacturerName: manufacturer.Name,
		Website:          manufacturer.Website,
	})

	pipelineID := s.pipelineID
	if manufacturer.PipelineID != nil && *manufacturer.PipelineID != "" {
		pipelineID = *manufacturer.PipelineID
	}

	result, err := s.source.RunExtraction(ctx, clients.ExtractionRunRequest{
		PipelineID:       pipelineID,
		ManufacturerID:   id.String(),
		ManufacturerName: manufacturer.Name,
		WebsiteURL:       manufacturer.Website,
	})
	if err != nil {
		return nil, s.fail(id, manufacturer, fmt.Errorf("pipeline run failed: %w", err))
	}

	products := make([]*models.Product, 0, len(result.Products))
	for i := range result.Products {
		products = append(products, &result.Products[i])
	}
	if err := s.repo.CreateExtractedProducts(id, products); err != nil {
		return nil, s.fail(id, manufacturer, fmt.Errorf("failed to persist extracted products: %w", err))
	}

	if err := s.repo.FinishExtraction(id, models.ExtractionStatusCompleted, models.ManufacturerStatusVerified); err != nil {
		log.WithError(err).Error("Failed to record completed extraction")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"execution_id":  result.ExecutionID,
		"product_count": len(products),
	}).Info("Extraction completed")

	metrics.ExtractionsTotal.WithLabelValues("completed").Inc()
	metrics.ExtractedProducts.Add(float64(len(products)))

	s.publisher.Publish(events.SubjectExtractionCompleted, events.ExtractionEvent{
		ManufacturerID:   id.String(),
		ManufacturerName: manufacturer.Name,
		Website:          manufacturer.Website,
		ExecutionID:      result.ExecutionID,
		ProductCount:     len(products),
	})

	message := fmt.Sprintf("Extraction completed, %d products added", len(products))
	return &models.ExtractResponse{
		Success:     true,
		Message:     &message,
		ExecutionID: result.ExecutionID,
	}, nil
}

// fail records the failed run and returns the external-service error
func (s *extractionService) fail(id uuid.UUID, manufacturer *models.Manufacturer, cause error) error {
	s.logger.WithError(cause).WithField("manufacturer_id", id).Error("Extraction failed")
	metrics.ExtractionsTotal.WithLabelValues("failed").Inc()

	if err := s.repo.FinishExtraction(id, models.ExtractionStatusFailed, models.ManufacturerStatusFailed); err != nil {
		s.logger.WithError(err).WithField("manufacturer_id", id).Error("Failed to record failed extraction")
	}

	s.publisher.Publish(events.SubjectExtractionFailed, events.ExtractionEvent{
		ManufacturerID:   id.String(),
		ManufacturerName: manufacturer.Name,
		Website:          manufacturer.Website,
		Error:            cause.Error(),
	})

	return fmt.Errorf("%w: %s", ErrExternalService, cause.Error())
}
