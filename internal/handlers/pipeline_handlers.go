package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

type PipelineHandler struct {
	service services.PipelineService
}

func NewPipelineHandler(service services.PipelineService) *PipelineHandler {
	return &PipelineHandler{service: service}
}

// GetPipelinesOverview returns status for both standing pipelines
// @Summary Pipelines overview
// @Description Returns metadata, execution history, and stats for the manufacturer and product pipelines
// @Tags pipelines
// @Produce json
// @Success 200 {object} models.PipelinesOverviewResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/pipelines [get]
func (h *PipelineHandler) GetPipelinesOverview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PipelinesOverviewResponse{Success: true, Data: overview})
}

// GetPipeline returns one pipeline with versions, executions, and stats
// @Summary Get pipeline
// @Tags pipelines
// @Produce json
// @Param pipelineId path string true "Pipeline ID"
// @Success 200 {object} models.PipelineDetailResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/pipelines/{pipelineId} [get]
func (h *PipelineHandler) GetPipeline(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("pipelineId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PipelineDetailResponse{Success: true, Data: detail})
}
