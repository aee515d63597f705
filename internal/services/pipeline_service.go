package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"catalog-service/internal/clients"
	"catalog-service/internal/models"
)

// PipelineService aggregates pipeline status for the dashboard
type PipelineService interface {
	Overview(ctx context.Context) (*models.PipelinesOverview, error)
	Detail(ctx context.Context, pipelineID string) (*models.PipelineDetail, error)
}

type pipelineService struct {
	source                 clients.PipelineDataSource
	manufacturerPipelineID string
	productPipelineID      string
	logger                 *logrus.Logger
}

// NewPipelineService creates a new pipeline service. A nil source means no
// provider credential is configured.
func NewPipelineService(source clients.PipelineDataSource, manufacturerPipelineID, productPipelineID string, logger *logrus.Logger) PipelineService {
	return &pipelineService{
		source:                 source,
		manufacturerPipelineID: manufacturerPipelineID,
		productPipelineID:      productPipelineID,
		logger:                 logger,
	}
}

// Aggregate summarizes an execution history. Executions arrive newest first;
// a missing or unrecognized status counts as non-success.
func Aggregate(executions []models.PipelineExecution) models.PipelineStats {
	stats := models.PipelineStats{
		LatestStatus:    "unknown",
		TotalExecutions: len(executions),
	}
	if len(executions) == 0 {
		return stats
	}

	if executions[0].Status != "" {
		stats.LatestStatus = executions[0].Status
	}
	stats.LatestStartedAt = executions[0].StartedAt

	successes := 0
	for _, execution := range executions {
		switch strings.ToLower(execution.Status) {
		case "complete", "success":
			successes++
		}
	}
	stats.SuccessRate = int(math.Round(100 * float64(successes) / float64(len(executions))))

	return stats
}

// Overview returns the dashboard summary for both standing pipelines
func (s *pipelineService) Overview(ctx context.Context) (*models.PipelinesOverview, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: pipeline API key not configured", ErrConfiguration)
	}

	manufacturer, err := s.summarize(ctx, s.manufacturerPipelineID)
	if err != nil {
		return nil, err
	}
	product, err := s.summarize(ctx, s.productPipelineID)
	if err != nil {
		return nil, err
	}

	return &models.PipelinesOverview{
		Manufacturer: manufacturer,
		Product:      product,
	}, nil
}

// Detail returns one pipeline with its versions, executions, and stats
func (s *pipelineService) Detail(ctx context.Context, pipelineID string) (*models.PipelineDetail, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: pipeline API key not configured", ErrConfiguration)
	}

	pipeline, err := s.source.DescribePipeline(ctx, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("%w: describe pipeline %s: %s", ErrExternalService, pipelineID, err.Error())
	}

	versions, err := s.source.ListPipelineVersions(ctx, pipelineID)
	if err != nil {
		s.logger.WithError(err).WithField("pipeline_id", pipelineID).Warn("Failed to list pipeline versions")
		versions = nil
	}

	executions, err := s.source.ListPipelineExecutions(ctx, pipelineID)
	if err != nil {
		s.logger.WithError(err).WithField("pipeline_id", pipelineID).Warn("Failed to list pipeline executions")
		executions = nil
	}

	return &models.PipelineDetail{
		Pipeline:   pipeline,
		Versions:   versions,
		Executions: executions,
		Stats:      Aggregate(executions),
	}, nil
}

func (s *pipelineService) summarize(ctx context.Context, pipelineID string) (*models.PipelineSummary, error) {
	pipeline, err := s.source.DescribePipeline(ctx, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("%w: describe pipeline %s: %s", ErrExternalService, pipelineID, err.Error())
	}

	executions, err := s.source.ListPipelineExecutions(ctx, pipelineID)
	if err != nil {
		// Degrade to metadata-only rather than failing the whole dashboard.
		s.logger.WithError(err).WithField("pipeline_id", pipelineID).Warn("Failed to list pipeline executions")
		executions = nil
	}

	return &models.PipelineSummary{
		Pipeline:   pipeline,
		Executions: executions,
		Stats:      Aggregate(executions),
	}, nil
}
