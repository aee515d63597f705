package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

func TestCreateManufacturerRequiresNameAndWebsite(t *testing.T) {
	repo := new(mockManufacturerRepo)
	svc := NewManufacturerService(repo, testLogger())

	_, err := svc.Create(&models.CreateManufacturerRequest{Website: "https://techcorp.example.com"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(&models.CreateManufacturerRequest{Name: "TechCorp Industries"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(&models.CreateManufacturerRequest{Name: "   ", Website: "https://techcorp.example.com"})
	assert.ErrorIs(t, err, ErrValidation)

	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateManufacturerDuplicateWebsiteConflicts(t *testing.T) {
	repo := new(mockManufacturerRepo)
	existing := testManufacturer(uuid.New())
	repo.On("GetByWebsite", "https://techcorp.example.com").Return(existing, nil)

	svc := NewManufacturerService(repo, testLogger())
	_, err := svc.Create(&models.CreateManufacturerRequest{
		Name:    "TechCorp Clone",
		Website: "https://techcorp.example.com",
	})

	assert.ErrorIs(t, err, ErrConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateManufacturerDefaultsToPending(t *testing.T) {
	repo := new(mockManufacturerRepo)
	repo.On("GetByWebsite", "https://newco.example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.MatchedBy(func(m *models.Manufacturer) bool {
		return m.Status == models.ManufacturerStatusPending &&
			m.ExtractionStatus == models.ExtractionStatusPending &&
			m.Name == "NewCo"
	})).Return(nil)

	svc := NewManufacturerService(repo, testLogger())
	manufacturer, err := svc.Create(&models.CreateManufacturerRequest{
		Name:    "NewCo",
		Website: "https://newco.example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ManufacturerStatusPending, manufacturer.Status)
	repo.AssertExpectations(t)
}

func TestGetManufacturerNotFound(t *testing.T) {
	repo := new(mockManufacturerRepo)
	id := uuid.New()
	repo.On("GetByIDWithProducts", id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewManufacturerService(repo, testLogger())
	_, err := svc.Get(id)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateManufacturerRejectsEmptyPatch(t *testing.T) {
	repo := new(mockManufacturerRepo)
	svc := NewManufacturerService(repo, testLogger())

	_, err := svc.Update(uuid.New(), &models.UpdateManufacturerRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateManufacturerWebsiteConflict(t *testing.T) {
	repo := new(mockManufacturerRepo)
	id := uuid.New()
	other := testManufacturer(uuid.New())
	website := "https://techcorp.example.com"
	repo.On("GetByWebsite", website).Return(other, nil)

	svc := NewManufacturerService(repo, testLogger())
	_, err := svc.Update(id, &models.UpdateManufacturerRequest{Website: &website})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteManufacturerNotFound(t *testing.T) {
	repo := new(mockManufacturerRepo)
	id := uuid.New()
	repo.On("Delete", id).Return(gorm.ErrRecordNotFound)

	svc := NewManufacturerService(repo, testLogger())
	err := svc.Delete(id)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtractionStatusReportsCount(t *testing.T) {
	repo := new(mockManufacturerRepo)
	id := uuid.New()
	manufacturer := testManufacturer(id)
	manufacturer.ExtractionStatus = models.ExtractionStatusCompleted
	manufacturer.Status = models.ManufacturerStatusVerified

	repo.On("GetByID", id).Return(manufacturer, nil)
	repo.On("CountProducts", id).Return(int64(12), nil)

	svc := NewManufacturerService(repo, testLogger())
	status, err := svc.ExtractionStatus(id)

	assert.NoError(t, err)
	assert.Equal(t, models.ExtractionStatusCompleted, status.ExtractionStatus)
	assert.Equal(t, int64(12), status.ProductCount)
}

func TestListManufacturersBuildsPagination(t *testing.T) {
	repo := new(mockManufacturerRepo)
	filters := &models.ManufacturerFilters{Status: "verified"}
	repo.On("List", filters, 2, 20).Return([]models.Manufacturer{*testManufacturer(uuid.New())}, int64(45), nil)

	svc := NewManufacturerService(repo, testLogger())
	manufacturers, pagination, err := svc.List(filters, 2, 20)

	assert.NoError(t, err)
	assert.Len(t, manufacturers, 1)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasNext)
	assert.True(t, pagination.HasPrevious)
}
