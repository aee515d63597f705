package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"catalog-service/internal/clients"
	"catalog-service/internal/models"
)

type mockManufacturerRepo struct {
	mock.Mock
}

func (m *mockManufacturerRepo) Create(manufacturer *models.Manufacturer) error {
	return m.Called(manufacturer).Error(0)
}

func (m *mockManufacturerRepo) GetByID(id uuid.UUID) (*models.Manufacturer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manufacturer), args.Error(1)
}

func (m *mockManufacturerRepo) GetByIDWithProducts(id uuid.UUID) (*models.Manufacturer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manufacturer), args.Error(1)
}

func (m *mockManufacturerRepo) GetByWebsite(website string) (*models.Manufacturer, error) {
	args := m.Called(website)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manufacturer), args.Error(1)
}

func (m *mockManufacturerRepo) Update(id uuid.UUID, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

func (m *mockManufacturerRepo) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *mockManufacturerRepo) List(filters *models.ManufacturerFilters, page, limit int) ([]models.Manufacturer, int64, error) {
	args := m.Called(filters, page, limit)
	var manufacturers []models.Manufacturer
	if args.Get(0) != nil {
		manufacturers = args.Get(0).([]models.Manufacturer)
	}
	return manufacturers, args.Get(1).(int64), args.Error(2)
}

func (m *mockManufacturerRepo) CountProducts(id uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockManufacturerRepo) ClaimExtraction(id uuid.UUID) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockManufacturerRepo) FinishExtraction(id uuid.UUID, extractionStatus models.ExtractionStatus, status models.ManufacturerStatus) error {
	return m.Called(id, extractionStatus, status).Error(0)
}

func (m *mockManufacturerRepo) CreateExtractedProducts(manufacturerID uuid.UUID, products []*models.Product) error {
	return m.Called(manufacturerID, products).Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(product *models.Product) error {
	return m.Called(product).Error(0)
}

func (m *mockProductRepo) GetByID(id uuid.UUID) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) List(filters *models.ProductFilters, page, limit int) ([]models.Product, int64, error) {
	args := m.Called(filters, page, limit)
	var products []models.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]models.Product)
	}
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) Categories() ([]string, error) {
	args := m.Called()
	var categories []string
	if args.Get(0) != nil {
		categories = args.Get(0).([]string)
	}
	return categories, args.Error(1)
}

func (m *mockProductRepo) RecordSearch(history *models.SearchHistory) error {
	return m.Called(history).Error(0)
}

type mockPipelineSource struct {
	mock.Mock
}

func (m *mockPipelineSource) DescribePipeline(ctx context.Context, pipelineID string) (*models.Pipeline, error) {
	args := m.Called(ctx, pipelineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pipeline), args.Error(1)
}

func (m *mockPipelineSource) ListPipelineVersions(ctx context.Context, pipelineID string) ([]models.PipelineVersion, error) {
	args := m.Called(ctx, pipelineID)
	var versions []models.PipelineVersion
	if args.Get(0) != nil {
		versions = args.Get(0).([]models.PipelineVersion)
	}
	return versions, args.Error(1)
}

func (m *mockPipelineSource) DescribePipelineVersion(ctx context.Context, pipelineVersion string) (*models.PipelineVersion, error) {
	args := m.Called(ctx, pipelineVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PipelineVersion), args.Error(1)
}

func (m *mockPipelineSource) ListPipelineExecutions(ctx context.Context, pipelineID string) ([]models.PipelineExecution, error) {
	args := m.Called(ctx, pipelineID)
	var executions []models.PipelineExecution
	if args.Get(0) != nil {
		executions = args.Get(0).([]models.PipelineExecution)
	}
	return executions, args.Error(1)
}

func (m *mockPipelineSource) RunExtraction(ctx context.Context, req clients.ExtractionRunRequest) (*clients.ExtractionRunResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.ExtractionRunResult), args.Error(1)
}
