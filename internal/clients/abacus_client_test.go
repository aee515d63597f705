package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestDescribePipelineSendsAPIKeyAndDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/describePipeline", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apiKey"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fd507c760", body["pipelineId"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"result":{"pipelineId":"fd507c760","name":"Manufacturer Data Extraction","status":"ACTIVE"}}`))
	}))
	defer server.Close()

	client := NewAbacusClient(server.URL, "test-key", newTestLogger())
	pipeline, err := client.DescribePipeline(context.Background(), "fd507c760")

	assert.NoError(t, err)
	assert.Equal(t, "fd507c760", pipeline.PipelineID)
	assert.Equal(t, "Manufacturer Data Extraction", pipeline.Name)
}

func TestListPipelineExecutionsDecodesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listPipelineExecutions", r.URL.Path)
		w.Write([]byte(`{"success":true,"result":[
			{"pipelineExecutionId":"ex-2","status":"COMPLETE"},
			{"pipelineExecutionId":"ex-1","status":"FAILED","error":"timeout"}
		]}`))
	}))
	defer server.Close()

	client := NewAbacusClient(server.URL, "test-key", newTestLogger())
	executions, err := client.ListPipelineExecutions(context.Background(), "1398624bb0")

	assert.NoError(t, err)
	assert.Len(t, executions, 2)
	assert.Equal(t, "ex-2", executions[0].PipelineExecutionID)
	assert.Equal(t, "FAILED", executions[1].Status)
}

func TestRunExtractionSendsInputs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runPipeline", r.URL.Path)

		var body struct {
			PipelineID string            `json:"pipelineId"`
			Inputs     map[string]string `json:"inputs"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1398624bb0", body.PipelineID)
		assert.Equal(t, "https://techcorp.example.com", body.Inputs["website_url"])
		assert.Equal(t, "TechCorp Industries", body.Inputs["manufacturer_name"])

		w.Write([]byte(`{"success":true,"result":{"pipelineExecutionId":"run-42"}}`))
	}))
	defer server.Close()

	client := NewAbacusClient(server.URL, "test-key", newTestLogger())
	result, err := client.RunExtraction(context.Background(), ExtractionRunRequest{
		PipelineID:       "1398624bb0",
		ManufacturerID:   "a1b2c3",
		ManufacturerName: "TechCorp Industries",
		WebsiteURL:       "https://techcorp.example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "run-42", result.ExecutionID)
}

func TestClientSurfacesProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewAbacusClient(server.URL, "bad-key", newTestLogger())
	_, err := client.DescribePipeline(context.Background(), "fd507c760")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestClientSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewAbacusClient(server.URL, "test-key", newTestLogger())
	_, err := client.ListPipelineVersions(context.Background(), "fd507c760")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFixtureDataSourceCoversStandingPipelines(t *testing.T) {
	fixture := NewFixtureDataSource()
	ctx := context.Background()

	for _, id := range []string{ManufacturerPipelineID, ProductPipelineID} {
		pipeline, err := fixture.DescribePipeline(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, id, pipeline.PipelineID)

		executions, err := fixture.ListPipelineExecutions(ctx, id)
		assert.NoError(t, err)
		assert.NotEmpty(t, executions)
	}

	_, err := fixture.DescribePipeline(ctx, "unknown")
	assert.Error(t, err)
}

func TestFixtureRunExtractionReturnsProducts(t *testing.T) {
	fixture := NewFixtureDataSource()
	result, err := fixture.RunExtraction(context.Background(), ExtractionRunRequest{
		PipelineID:       ProductPipelineID,
		ManufacturerID:   "3f8e9a10-1111-2222-3333-444455556666",
		ManufacturerName: "TechCorp Industries",
		WebsiteURL:       "https://techcorp.example.com",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.ExecutionID)
	assert.Len(t, result.Products, 3)
	for _, p := range result.Products {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.SKU)
	}
}
