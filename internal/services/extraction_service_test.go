package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"catalog-service/internal/clients"
	"catalog-service/internal/models"
)

func testManufacturer(id uuid.UUID) *models.Manufacturer {
	return &models.Manufacturer{
		ID:               id,
		Name:             "TechCorp Industries",
		Website:          "https://techcorp.example.com",
		Status:           models.ManufacturerStatusPending,
		ExtractionStatus: models.ExtractionStatusPending,
	}
}

func TestTriggerRequiresConfirmation(t *testing.T) {
	repo := new(mockManufacturerRepo)
	source := new(mockPipelineSource)
	svc := NewExtractionService(repo, source, nil, "1398624bb0", testLogger())

	_, err := svc.Trigger(context.Background(), uuid.New(), &models.ExtractRequest{Confirmed: false})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "ClaimExtraction", mock.Anything)
	repo.AssertNotCalled(t, "FinishExtraction", mock.Anything, mock.Anything, mock.Anything)
}

func TestTriggerUnknownManufacturer(t *testing.T) {
	repo := new(mockManufacturerRepo)
	id := uuid.New()
	repo.On("GetByID", id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewExtractionService(repo, new(mockPipelineSource), nil, "1398624bb0", testLogger())
	_, err := svc.Trigger(context.Background(), id, &models.ExtractRequest{Confirmed: true})

	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "ClaimExtraction", mock.Anything)
}

func TestTriggerWithoutSourceIsConfigurationError(t *testing.T) {
	repo := new(mockManufacturerRepo)
	id := uuid.New()
	repo.On("GetByID", id).Return(testManufacturer(id), nil)

	svc := NewExtractionService(repo, nil, nil, "1398624bb0", testLogger())
	_, err := svc.Trigger(context.Background(), id, &models.ExtractRequest{Confirmed: true})

	assert.ErrorIs(t, err, ErrConfiguration)
	repo.AssertNotCalled(t, "ClaimExtraction", mock.Anything)
}

func TestTriggerConcurrentClaimConflicts(t *testing.T) {
	repo := new(mockManufacturerRepo)
	id := uuid.New()
	repo.On("GetByID", id).Return(testManufacturer(id), nil)
	repo.On("ClaimExtraction", id).Return(false, nil)

	svc := NewExtractionService(repo, new(mockPipelineSource), nil, "1398624bb0", testLogger())
	_, err := svc.Trigger(context.Background(), id, &models.ExtractRequest{Confirmed: true})

	assert.ErrorIs(t, err, ErrConflict)
	repo.AssertNotCalled(t, "FinishExtraction", mock.Anything, mock.Anything, mock.Anything)
}

func TestTriggerSuccessPersistsProductsAndVerifies(t *testing.T) {
	repo := new(mockManufacturerRepo)
	source := new(mockPipelineSource)
	id := uuid.New()

	repo.On("GetByID", id).Return(testManufacturer(id), nil)
	repo.On("ClaimExtraction", id).Return(true, nil)
	source.On("RunExtraction", mock.Anything, mock.MatchedBy(func(req clients.ExtractionRunRequest) bool {
		return req.PipelineID == "1398624bb0" &&
			req.WebsiteURL == "https://techcorp.example.com" &&
			req.ManufacturerID == id.String()
	})).Return(&clients.ExtractionRunResult{
		ExecutionID: "run-7",
		Products: []models.Product{
			{Name: "Controller", SKU: "C-1"},
			{Name: "Module", SKU: "M-2"},
		},
	}, nil)
	repo.On("CreateExtractedProducts", id, mock.MatchedBy(func(products []*models.Product) bool {
		return len(products) == 2
	})).Return(nil)
	repo.On("FinishExtraction", id, models.ExtractionStatusCompleted, models.ManufacturerStatusVerified).Return(nil)

	svc := NewExtractionService(repo, source, nil, "1398624bb0", testLogger())
	resp, err := svc.Trigger(context.Background(), id, &models.ExtractRequest{Confirmed: true})

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "run-7", resp.ExecutionID)
	repo.AssertExpectations(t)
	source.AssertExpectations(t)
}

func TestTriggerPipelineFailureMarksFailed(t *testing.T) {
	repo := new(mockManufacturerRepo)
	source := new(mockPipelineSource)
	id := uuid.New()

	repo.On("GetByID", id).Return(testManufacturer(id), nil)
	repo.On("ClaimExtraction", id).Return(true, nil)
	source.On("RunExtraction", mock.Anything, mock.Anything).
		Return(nil, errors.New("runPipeline returned status 502"))
	repo.On("FinishExtraction", id, models.ExtractionStatusFailed, models.ManufacturerStatusFailed).Return(nil)

	svc := NewExtractionService(repo, source, nil, "1398624bb0", testLogger())
	_, err := svc.Trigger(context.Background(), id, &models.ExtractRequest{Confirmed: true})

	assert.ErrorIs(t, err, ErrExternalService)
	repo.AssertNotCalled(t, "CreateExtractedProducts", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestTriggerPersistFailureMarksFailed(t *testing.T) {
	repo := new(mockManufacturerRepo)
	source := new(mockPipelineSource)
	id := uuid.New()

	repo.On("GetByID", id).Return(testManufacturer(id), nil)
	repo.On("ClaimExtraction", id).Return(true, nil)
	source.On("RunExtraction", mock.Anything, mock.Anything).
		Return(&clients.ExtractionRunResult{
			ExecutionID: "run-8",
			Products:    []models.Product{{Name: "Controller", SKU: "C-1"}},
		}, nil)
	repo.On("CreateExtractedProducts", id, mock.Anything).Return(errors.New("constraint violation"))
	repo.On("FinishExtraction", id, models.ExtractionStatusFailed, models.ManufacturerStatusFailed).Return(nil)

	svc := NewExtractionService(repo, source, nil, "1398624bb0", testLogger())
	_, err := svc.Trigger(context.Background(), id, &models.ExtractRequest{Confirmed: true})

	assert.ErrorIs(t, err, ErrExternalService)
	repo.AssertExpectations(t)
}

func TestTriggerUsesManufacturerPipelineOverride(t *testing.T) {
	repo := new(mockManufacturerRepo)
	source := new(mockPipelineSource)
	id := uuid.New()

	manufacturer := testManufacturer(id)
	override := "custom-pipeline"
	manufacturer.PipelineID = &override

	repo.On("GetByID", id).Return(manufacturer, nil)
	repo.On("ClaimExtraction", id).Return(true, nil)
	source.On("RunExtraction", mock.Anything, mock.MatchedBy(func(req clients.ExtractionRunRequest) bool {
		return req.PipelineID == "custom-pipeline"
	})).Return(&clients.ExtractionRunResult{ExecutionID: "run-9"}, nil)
	repo.On("CreateExtractedProducts", id, mock.Anything).Return(nil)
	repo.On("FinishExtraction", id, models.ExtractionStatusCompleted, models.ManufacturerStatusVerified).Return(nil)

	svc := NewExtractionService(repo, source, nil, "1398624bb0", testLogger())
	_, err := svc.Trigger(context.Background(), id, &models.ExtractRequest{Confirmed: true})

	assert.NoError(t, err)
	source.AssertExpectations(t)
}
