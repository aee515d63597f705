package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"catalog-service/internal/models"
)

// Well-known pipeline IDs of the two standing extraction pipelines
const (
	ManufacturerPipelineID = "fd507c760"
	ProductPipelineID      = "1398624bb0"
)

// FixtureDataSource serves deterministic pipeline data so the dashboard stays
// usable without a provider credential. It implements PipelineDataSource.
type FixtureDataSource struct {
	now func() time.Time
}

// NewFixtureDataSource creates a fixture-backed pipeline data source
func NewFixtureDataSource() *FixtureDataSource {
	return &FixtureDataSource{now: time.Now}
}

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func boolPtr(b bool) *bool           { return &b }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

// DescribePipeline returns fixture metadata for the two standing pipelines
func (f *FixtureDataSource) DescribePipeline(_ context.Context, pipelineID string) (*models.Pipeline, error) {
	base := f.now().Add(-45 * 24 * time.Hour)
	switch pipelineID {
	case ManufacturerPipelineID:
		return &models.Pipeline{
			PipelineID:  ManufacturerPipelineID,
			Name:        "Manufacturer Data Extraction",
			Description: strPtr("Extracts manufacturer details from company websites"),
			Status:      "ACTIVE",
			Cron:        strPtr("0 2 * * *"),
			IsProd:      boolPtr(true),
			CreatedAt:   timePtr(base),
		}, nil
	case ProductPipelineID:
		return &models.Pipeline{
			PipelineID:  ProductPipelineID,
			Name:        "Product Catalog Extraction",
			Description: strPtr("Crawls manufacturer websites and extracts product catalogs"),
			Status:      "ACTIVE",
			Cron:        strPtr("0 4 * * *"),
			IsProd:      boolPtr(true),
			CreatedAt:   timePtr(base.Add(24 * time.Hour)),
		}, nil
	default:
		return nil, fmt.Errorf("pipeline %s not found", pipelineID)
	}
}

// ListPipelineVersions returns a fixed two-version history
func (f *FixtureDataSource) ListPipelineVersions(_ context.Context, pipelineID string) ([]models.PipelineVersion, error) {
	now := f.now()
	return []models.PipelineVersion{
		{
			PipelineVersion: fmt.Sprintf("%s-v2", pipelineID),
			PipelineID:      pipelineID,
			Version:         2,
			Status:          "COMPLETE",
			CreatedAt:       timePtr(now.Add(-10 * 24 * time.Hour)),
			CompletedAt:     timePtr(now.Add(-10*24*time.Hour + 8*time.Minute)),
		},
		{
			PipelineVersion: fmt.Sprintf("%s-v1", pipelineID),
			PipelineID:      pipelineID,
			Version:         1,
			Status:          "COMPLETE",
			CreatedAt:       timePtr(now.Add(-40 * 24 * time.Hour)),
			CompletedAt:     timePtr(now.Add(-40*24*time.Hour + 11*time.Minute)),
		},
	}, nil
}

// DescribePipelineVersion returns fixture metadata for one version
func (f *FixtureDataSource) DescribePipelineVersion(_ context.Context, pipelineVersion string) (*models.PipelineVersion, error) {
	now := f.now()
	return &models.PipelineVersion{
		PipelineVersion: pipelineVersion,
		Version:         2,
		Status:          "COMPLETE",
		CreatedAt:       timePtr(now.Add(-10 * 24 * time.Hour)),
		CompletedAt:     timePtr(now.Add(-10*24*time.Hour + 8*time.Minute)),
	}, nil
}

// ListPipelineExecutions returns a recent execution history, newest first,
// with one deliberate failure so the dashboard success rate is non-trivial
func (f *FixtureDataSource) ListPipelineExecutions(_ context.Context, pipelineID string) ([]models.PipelineExecution, error) {
	now := f.now()
	executions := make([]models.PipelineExecution, 0, 5)
	for i := 0; i < 5; i++ {
		started := now.Add(-time.Duration(i+1) * 24 * time.Hour)
		status := "COMPLETE"
		var execErr *string
		var completed *time.Time
		records := intPtr(120 - i*7)
		if i == 3 {
			status = "FAILED"
			execErr = strPtr("source website unreachable")
			records = nil
		} else {
			completed = timePtr(started.Add(9 * time.Minute))
		}
		executions = append(executions, models.PipelineExecution{
			PipelineExecutionID: fmt.Sprintf("%s-exec-%d", pipelineID, 5-i),
			PipelineID:          pipelineID,
			PipelineVersion:     strPtr(fmt.Sprintf("%s-v2", pipelineID)),
			Status:              status,
			StartedAt:           timePtr(started),
			CompletedAt:         completed,
			RecordsProcessed:    records,
			Error:               execErr,
		})
	}
	return executions, nil
}

// RunExtraction fabricates a small product catalog for the manufacturer so
// the extraction workflow completes end to end without the provider
func (f *FixtureDataSource) RunExtraction(_ context.Context, req ExtractionRunRequest) (*ExtractionRunResult, error) {
	specs := models.JSON{"source": req.WebsiteURL, "extraction": "fixture"}
	products := []models.Product{
		{
			ID:             uuid.New(),
			Name:           fmt.Sprintf("%s Flagship Controller", req.ManufacturerName),
			SKU:            fmt.Sprintf("FX-%s-001", shortID(req.ManufacturerID)),
			Category:       strPtr("Electronics"),
			Price:          floatPtr(249.99),
			Availability:   models.AvailabilityInStock,
			Description:    strPtr("Flagship product discovered during catalog extraction"),
			Specifications: &specs,
			ProductURL:     strPtr(req.WebsiteURL + "/products/flagship"),
		},
		{
			ID:             uuid.New(),
			Name:           fmt.Sprintf("%s Compact Module", req.ManufacturerName),
			SKU:            fmt.Sprintf("FX-%s-002", shortID(req.ManufacturerID)),
			Category:       strPtr("Components"),
			Price:          floatPtr(89.50),
			Availability:   models.AvailabilityLowStock,
			Description:    strPtr("Entry-level module discovered during catalog extraction"),
			Specifications: &specs,
			ProductURL:     strPtr(req.WebsiteURL + "/products/compact"),
		},
		{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("%s Service Kit", req.ManufacturerName),
			SKU:          fmt.Sprintf("FX-%s-003", shortID(req.ManufacturerID)),
			Category:     strPtr("Accessories"),
			Availability: models.AvailabilityInStock,
			Description:  strPtr("Maintenance kit discovered during catalog extraction"),
		},
	}

	return &ExtractionRunResult{
		ExecutionID: fmt.Sprintf("fixture-exec-%d", f.now().Unix()),
		Products:    products,
	}, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
