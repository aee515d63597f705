package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// exportPageSize is the batch size used when draining the filtered result set
const exportPageSize = 500

type ExportHandler struct {
	service services.ProductService
}

func NewExportHandler(service services.ProductService) *ExportHandler {
	return &ExportHandler{service: service}
}

var exportHeaders = []string{
	"Name", "SKU", "Manufacturer", "Category", "Price", "Availability", "Description", "Created At",
}

func exportRow(p *models.Product) []string {
	manufacturer := ""
	if p.Manufacturer != nil {
		manufacturer = p.Manufacturer.Name
	}
	category := ""
	if p.Category != nil {
		category = *p.Category
	}
	price := ""
	if p.Price != nil {
		price = strconv.FormatFloat(*p.Price, 'f', 2, 64)
	}
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return []string{
		p.Name,
		p.SKU,
		manufacturer,
		category,
		price,
		string(p.Availability),
		description,
		p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// collect drains every page of the filtered result set
func (h *ExportHandler) collect(filters *models.ProductFilters) ([]models.Product, error) {
	var all []models.Product
	for page := 1; ; page++ {
		products, pagination, err := h.service.List(filters, page, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, products...)
		if pagination == nil || !pagination.HasNext {
			break
		}
	}
	return all, nil
}

// ExportProducts streams the filtered product list as a spreadsheet
// @Summary Export products
// @Description Exports the filtered product list as an xlsx or csv download
// @Tags products
// @Produce application/octet-stream
// @Param format query string false "Export format: xlsx or csv" default(xlsx)
// @Param manufacturerId query string false "Filter by manufacturer"
// @Param category query string false "Filter by category"
// @Param availability query string false "Filter by availability"
// @Param search query string false "Search name, description, and SKU"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/products/export [get]
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		respondBadRequest(c, "format must be xlsx or csv")
		return
	}

	products, err := h.collect(productFiltersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("products-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if format == "csv" {
		h.writeCSV(c, products)
		return
	}
	h.writeXLSX(c, products)
}

func (h *ExportHandler) writeCSV(c *gin.Context, products []models.Product) {
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeaders)
	for i := range products {
		_ = writer.Write(exportRow(&products[i]))
	}
	writer.Flush()
}

func (h *ExportHandler) writeXLSX(c *gin.Context, products []models.Product) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Products"
	index, err := file.NewSheet(sheet)
	if err != nil {
		respondError(c, err)
		return
	}
	file.SetActiveSheet(index)
	file.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		file.SetCellValue(sheet, cell, header)
	}
	for row := range products {
		values := exportRow(&products[row])
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			file.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		c.Abort()
	}
}
