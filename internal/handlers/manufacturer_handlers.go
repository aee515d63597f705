package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

type ManufacturerHandler struct {
	service           services.ManufacturerService
	extractionService services.ExtractionService
	defaultPageSize   int
	maxPageSize       int
}

func NewManufacturerHandler(service services.ManufacturerService, extractionService services.ExtractionService, defaultPageSize, maxPageSize int) *ManufacturerHandler {
	return &ManufacturerHandler{
		service:           service,
		extractionService: extractionService,
		defaultPageSize:   defaultPageSize,
		maxPageSize:       maxPageSize,
	}
}

func (h *ManufacturerHandler) pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultPageSize)))
	if err != nil || limit < 1 {
		limit = h.defaultPageSize
	}
	if limit > h.maxPageSize {
		limit = h.maxPageSize
	}
	return page, limit
}

// ListManufacturers returns manufacturers with filters and pagination
// @Summary List manufacturers
// @Description Returns manufacturers filtered by status, category, and search term
// @Tags manufacturers
// @Produce json
// @Param status query string false "Filter by status (all disables)"
// @Param category query string false "Filter by category (all disables)"
// @Param search query string false "Search name, website, and location"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.ManufacturerListResponse
// @Router /api/v1/manufacturers [get]
func (h *ManufacturerHandler) ListManufacturers(c *gin.Context) {
	filters := &models.ManufacturerFilters{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	page, limit := h.pagination(c)

	manufacturers, pagination, err := h.service.List(filters, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ManufacturerListResponse{
		Success:    true,
		Data:       manufacturers,
		Pagination: pagination,
	})
}

// GetManufacturer returns a single manufacturer with its products
// @Summary Get manufacturer
// @Tags manufacturers
// @Produce json
// @Param id path string true "Manufacturer ID"
// @Success 200 {object} models.ManufacturerResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/manufacturers/{id} [get]
func (h *ManufacturerHandler) GetManufacturer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a valid uuid")
		return
	}

	manufacturer, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ManufacturerResponse{Success: true, Data: manufacturer})
}

// CreateManufacturer creates a new manufacturer
// @Summary Create manufacturer
// @Tags manufacturers
// @Accept json
// @Produce json
// @Param manufacturer body models.CreateManufacturerRequest true "Manufacturer"
// @Success 201 {object} models.ManufacturerResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/v1/manufacturers [post]
func (h *ManufacturerHandler) CreateManufacturer(c *gin.Context) {
	var req models.CreateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	manufacturer, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ManufacturerResponse{Success: true, Data: manufacturer})
}

// UpdateManufacturer applies a partial update
// @Summary Update manufacturer
// @Tags manufacturers
// @Accept json
// @Produce json
// @Param id path string true "Manufacturer ID"
// @Param manufacturer body models.UpdateManufacturerRequest true "Fields to update"
// @Success 200 {object} models.ManufacturerResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/manufacturers/{id} [patch]
func (h *ManufacturerHandler) UpdateManufacturer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a valid uuid")
		return
	}

	var req models.UpdateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	manufacturer, err := h.service.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ManufacturerResponse{Success: true, Data: manufacturer})
}

// DeleteManufacturer removes a manufacturer and its products
// @Summary Delete manufacturer
// @Tags manufacturers
// @Produce json
// @Param id path string true "Manufacturer ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/manufacturers/{id} [delete]
func (h *ManufacturerHandler) DeleteManufacturer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a valid uuid")
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	message := "Manufacturer deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// TriggerExtraction starts the product extraction workflow
// @Summary Trigger extraction
// @Description Starts the pipeline extraction for a manufacturer; requires explicit confirmation
// @Tags extraction
// @Accept json
// @Produce json
// @Param id path string true "Manufacturer ID"
// @Param request body models.ExtractRequest true "Confirmation"
// @Success 200 {object} models.ExtractResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/v1/manufacturers/{id}/extract [post]
func (h *ManufacturerHandler) TriggerExtraction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a valid uuid")
		return
	}

	var req models.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.extractionService.Trigger(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetExtractionStatus reports the extraction state and product count
// @Summary Get extraction status
// @Tags extraction
// @Produce json
// @Param id path string true "Manufacturer ID"
// @Success 200 {object} models.ExtractionStatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/manufacturers/{id}/extract [get]
func (h *ManufacturerHandler) GetExtractionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a valid uuid")
		return
	}

	status, err := h.service.ExtractionStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ExtractionStatusResponse{Success: true, Data: status})
}
