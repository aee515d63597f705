package models

import "time"

// Pipeline describes an external extraction pipeline as reported by the
// provider's describePipeline operation.
type Pipeline struct {
	PipelineID  string     `json:"pipelineId"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Cron        *string    `json:"cron,omitempty"`
	IsProd      *bool      `json:"isProd,omitempty"`
	ProjectID   *string    `json:"projectId,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// PipelineVersion is one published version of a pipeline
type PipelineVersion struct {
	PipelineVersion string     `json:"pipelineVersion"`
	PipelineID      string     `json:"pipelineId,omitempty"`
	Version         int        `json:"version,omitempty"`
	Status          string     `json:"status,omitempty"`
	Error           *string    `json:"error,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// PipelineExecution is one run of a pipeline. The provider owns this data;
// the service only reads and aggregates it.
type PipelineExecution struct {
	PipelineExecutionID string     `json:"pipelineExecutionId"`
	PipelineID          string     `json:"pipelineId,omitempty"`
	PipelineVersion     *string    `json:"pipelineVersion,omitempty"`
	Status              string     `json:"status,omitempty"`
	StartedAt           *time.Time `json:"startedAt,omitempty"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	RecordsProcessed    *int       `json:"recordsProcessed,omitempty"`
	Error               *string    `json:"error,omitempty"`
}

// PipelineStats summarizes the execution history of one pipeline
type PipelineStats struct {
	LatestStatus    string     `json:"latestStatus"`
	LatestStartedAt *time.Time `json:"latestStartedAt,omitempty"`
	SuccessRate     int        `json:"successRate"`
	TotalExecutions int        `json:"totalExecutions"`
}

// PipelineSummary bundles a pipeline with its execution history and stats
type PipelineSummary struct {
	Pipeline   *Pipeline           `json:"pipeline"`
	Executions []PipelineExecution `json:"executions"`
	Stats      PipelineStats       `json:"stats"`
}

// PipelineDetail adds the version list returned by the per-pipeline read
type PipelineDetail struct {
	Pipeline   *Pipeline           `json:"pipeline"`
	Versions   []PipelineVersion   `json:"versions"`
	Executions []PipelineExecution `json:"executions"`
	Stats      PipelineStats       `json:"stats"`
}

// PipelinesOverview is the dashboard payload covering both standing pipelines
type PipelinesOverview struct {
	Manufacturer *PipelineSummary `json:"manufacturer"`
	Product      *PipelineSummary `json:"product"`
}

// PipelinesOverviewResponse wraps the dashboard pipelines read
type PipelinesOverviewResponse struct {
	Success bool               `json:"success"`
	Data    *PipelinesOverview `json:"data"`
}

// PipelineDetailResponse wraps the single pipeline read
type PipelineDetailResponse struct {
	Success bool            `json:"success"`
	Data    *PipelineDetail `json:"data"`
}
