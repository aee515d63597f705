package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
)

// DefaultAbacusBaseURL is the production endpoint of the pipeline provider
const DefaultAbacusBaseURL = "https://api.abacus.ai/v0"

// ExtractionRunRequest carries the inputs for a product extraction run
type ExtractionRunRequest struct {
	PipelineID       string
	ManufacturerID   string
	ManufacturerName string
	WebsiteURL       string
}

// ExtractionRunResult is the outcome of a triggered extraction run. Products
// is populated when the provider returns extracted records inline.
type ExtractionRunResult struct {
	ExecutionID string
	Products    []models.Product
}

// PipelineDataSource reads pipeline metadata and triggers extraction runs.
// AbacusClient is the live implementation; FixtureDataSource serves
// deterministic data when no credential is configured.
type PipelineDataSource interface {
	DescribePipeline(ctx context.Context, pipelineID string) (*models.Pipeline, error)
	ListPipelineVersions(ctx context.Context, pipelineID string) ([]models.PipelineVersion, error)
	DescribePipelineVersion(ctx context.Context, pipelineVersion string) (*models.PipelineVersion, error)
	ListPipelineExecutions(ctx context.Context, pipelineID string) ([]models.PipelineExecution, error)
	RunExtraction(ctx context.Context, req ExtractionRunRequest) (*ExtractionRunResult, error)
}

// AbacusClient calls the Abacus.AI REST API. Every operation is a JSON POST
// authenticated with the apiKey header.
type AbacusClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewAbacusClient creates a new pipeline API client
func NewAbacusClient(baseURL, apiKey string, logger *logrus.Logger) *AbacusClient {
	if baseURL == "" {
		baseURL = DefaultAbacusBaseURL
	}
	return &AbacusClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type abacusEnvelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *string         `json:"error,omitempty"`
}

// post sends one API operation and decodes the result payload into out
func (c *AbacusClient) post(ctx context.Context, operation string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, operation)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"operation":   operation,
			"status_code": resp.StatusCode,
		}).Error("Pipeline API returned non-success status")
		return fmt.Errorf("%s returned status %d", operation, resp.StatusCode)
	}

	var envelope abacusEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	if !envelope.Success {
		msg := "unknown error"
		if envelope.Error != nil {
			msg = *envelope.Error
		}
		return fmt.Errorf("%s rejected: %s", operation, msg)
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", operation, err)
		}
	}
	return nil
}

// DescribePipeline fetches the metadata of one pipeline
func (c *AbacusClient) DescribePipeline(ctx context.Context, pipelineID string) (*models.Pipeline, error) {
	var pipeline models.Pipeline
	err := c.post(ctx, "describePipeline", map[string]string{"pipelineId": pipelineID}, &pipeline)
	if err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// ListPipelineVersions fetches the published versions of a pipeline
func (c *AbacusClient) ListPipelineVersions(ctx context.Context, pipelineID string) ([]models.PipelineVersion, error) {
	var versions []models.PipelineVersion
	err := c.post(ctx, "listPipelineVersions", map[string]string{"pipelineId": pipelineID}, &versions)
	if err != nil {
		return nil, err
	}
	return versions, nil
}

// DescribePipelineVersion fetches one published pipeline version
func (c *AbacusClient) DescribePipelineVersion(ctx context.Context, pipelineVersion string) (*models.PipelineVersion, error) {
	var version models.PipelineVersion
	err := c.post(ctx, "describePipelineVersion", map[string]string{"pipelineVersion": pipelineVersion}, &version)
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ListPipelineExecutions fetches the execution history of a pipeline,
// newest first as the provider returns them
func (c *AbacusClient) ListPipelineExecutions(ctx context.Context, pipelineID string) ([]models.PipelineExecution, error) {
	var executions []models.PipelineExecution
	err := c.post(ctx, "listPipelineExecutions", map[string]string{"pipelineId": pipelineID}, &executions)
	if err != nil {
		return nil, err
	}
	return executions, nil
}

type runPipelineResult struct {
	PipelineExecutionID string           `json:"pipelineExecutionId"`
	Products            []models.Product `json:"products,omitempty"`
}

// RunExtraction triggers the extraction pipeline for a manufacturer website
func (c *AbacusClient) RunExtraction(ctx context.Context, req ExtractionRunRequest) (*ExtractionRunResult, error) {
	payload := map[string]interface{}{
		"pipelineId": req.PipelineID,
		"inputs": map[string]string{
			"website_url":       req.WebsiteURL,
			"manufacturer_name": req.ManufacturerName,
			"manufacturer_id":   req.ManufacturerID,
		},
	}

	c.logger.WithFields(logrus.Fields{
		"pipeline_id":     req.PipelineID,
		"manufacturer_id": req.ManufacturerID,
	}).Info("Triggering extraction pipeline")

	var result runPipelineResult
	if err := c.post(ctx, "runPipeline", payload, &result); err != nil {
		return nil, err
	}
	return &ExtractionRunResult{
		ExecutionID: result.PipelineExecutionID,
		Products:    result.Products,
	}, nil
}
