package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability represents the stock state of a product
type Availability string

const (
	AvailabilityInStock      Availability = "in_stock"
	AvailabilityOutOfStock   Availability = "out_of_stock"
	AvailabilityLowStock     Availability = "low_stock"
	AvailabilityDiscontinued Availability = "discontinued"
)

// Product represents a product entity. Products are created either directly
// or as the result of a completed extraction run.
type Product struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ManufacturerID uuid.UUID       `json:"manufacturerId" gorm:"type:uuid;not null;index"`
	Name           string          `json:"name" gorm:"not null"`
	SKU            string          `json:"sku" gorm:"not null;index"`
	Category       *string         `json:"category,omitempty" gorm:"index"`
	Price          *float64        `json:"price,omitempty"`
	Availability   Availability    `json:"availability" gorm:"not null;default:'in_stock'"`
	Description    *string         `json:"description,omitempty"`
	Specifications *JSON           `json:"specifications,omitempty" gorm:"type:jsonb"`
	ProductURL     *string         `json:"productUrl,omitempty"`
	Manufacturer   *Manufacturer   `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// ManufacturerSummary carries the related manufacturer fields returned with
// each product row
type ManufacturerSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Website  string    `json:"website"`
	Category *string   `json:"category,omitempty"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	ManufacturerID string       `json:"manufacturerId"`
	Name           string       `json:"name"`
	SKU            string       `json:"sku"`
	Category       *string      `json:"category,omitempty"`
	Price          *float64     `json:"price,omitempty"`
	Availability   Availability `json:"availability,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Specifications *JSON        `json:"specifications,omitempty"`
	ProductURL     *string      `json:"productUrl,omitempty"`
}

// ProductFilters represents filters for product queries.
// Empty string or "all" disables a selector; string-typed bounds arrive
// straight from the query string and are parsed by the repository.
type ProductFilters struct {
	ManufacturerID string `json:"manufacturerId,omitempty"`
	Category       string `json:"category,omitempty"`
	Availability   string `json:"availability,omitempty"`
	Search         string `json:"search,omitempty"`
	MinPrice       string `json:"minPrice,omitempty"`
	MaxPrice       string `json:"maxPrice,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
}

// ProductResponse represents a single product response
type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

// ProductListResponse represents a list of products response
type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
