package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

type ProductHandler struct {
	service         services.ProductService
	defaultPageSize int
	maxPageSize     int
}

func NewProductHandler(service services.ProductService, defaultPageSize, maxPageSize int) *ProductHandler {
	return &ProductHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (h *ProductHandler) pagination(c *gin.Context) (int, int) {
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

func productFiltersFromQuery(c *gin.Context) *models.ProductFilters {
	return &models.ProductFilters{
		ManufacturerID: c.Query("manufacturerId"),
		Category:       c.Query("category"),
		Availability:   c.Query("availability"),
		Search:         c.Query("search"),
		MinPrice:       c.Query("minPrice"),
		MaxPrice:       c.Query("maxPrice"),
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
	}
}

// ListProducts returns products with filters and pagination
// @Summary List products
// @Description Returns products filtered by manufacturer, category, availability, search term, price range, and date range
// @Tags products
// @Produce json
// @Param manufacturerId query string false "Filter by manufacturer"
// @Param category query string false "Filter by category (all disables)"
// @Param availability query string false "Filter by availability (all disables)"
// @Param search query string false "Search name, description, and SKU"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param startDate query string false "Created on or after (YYYY-MM-DD)"
// @Param endDate query string false "Created on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.ProductListResponse
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters := productFiltersFromQuery(c)
	page, limit := h.pagination(c)

	products, pagination, err := h.service.List(filters, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       products,
		Pagination: pagination,
	})
}

// GetProduct returns a single product with its manufacturer
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a valid uuid")
		return
	}

	product, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// CreateProduct creates a new product
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	product, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ProductResponse{Success: true, Data: product})
}

// GetCategories returns the distinct product categories
// @Summary List product categories
// @Tags products
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/products/categories [get]
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.Categories()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: categories})
}
