package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ManufacturerStatus represents the verification status of a manufacturer
type ManufacturerStatus string

const (
	ManufacturerStatusPending  ManufacturerStatus = "pending"
	ManufacturerStatusVerified ManufacturerStatus = "verified"
	ManufacturerStatusFailed   ManufacturerStatus = "failed"
)

// ExtractionStatus represents the state of the product extraction workflow
type ExtractionStatus string

const (
	ExtractionStatusPending    ExtractionStatus = "pending"
	ExtractionStatusInProgress ExtractionStatus = "in_progress"
	ExtractionStatusCompleted  ExtractionStatus = "completed"
	ExtractionStatusFailed     ExtractionStatus = "failed"
)

// JSON type for PostgreSQL JSONB (object/map)
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Manufacturer represents a manufacturer entity. It is the aggregate root for
// products: deleting a manufacturer cascades to its catalog.
type Manufacturer struct {
	ID               uuid.UUID          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name             string             `json:"name" gorm:"not null"`
	Website          string             `json:"website" gorm:"not null;uniqueIndex:idx_manufacturers_website"`
	Category         *string            `json:"category,omitempty" gorm:"index"`
	Location         *string            `json:"location,omitempty"`
	Status           ManufacturerStatus `json:"status" gorm:"not null;default:'pending';index"`
	ExtractionStatus ExtractionStatus   `json:"extractionStatus" gorm:"not null;default:'pending'"`
	PipelineID       *string            `json:"pipelineId,omitempty"`
	Products         []*Product         `json:"products,omitempty" gorm:"foreignKey:ManufacturerID;constraint:OnDelete:CASCADE"`
	ProductCount     int64              `json:"productCount" gorm:"-"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	DeletedAt        *gorm.DeletedAt    `json:"deletedAt,omitempty" gorm:"index"`
}

// SearchHistory records a product search for auditing. Write-only: rows are
// appended on search requests and only surfaced as counts.
type SearchHistory struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ManufacturerID *uuid.UUID `json:"manufacturerId,omitempty" gorm:"type:uuid;index"`
	Query          string     `json:"query" gorm:"not null"`
	ResultCount    int        `json:"resultCount"`
	Filters        *JSON      `json:"filters,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// CreateManufacturerRequest represents a request to create a new manufacturer
type CreateManufacturerRequest struct {
	Name     string  `json:"name"`
	Website  string  `json:"website"`
	Category *string `json:"category,omitempty"`
	Location *string `json:"location,omitempty"`
}

// UpdateManufacturerRequest represents a request to update a manufacturer
type UpdateManufacturerRequest struct {
	Name       *string             `json:"name,omitempty"`
	Website    *string             `json:"website,omitempty"`
	Category   *string             `json:"category,omitempty"`
	Location   *string             `json:"location,omitempty"`
	Status     *ManufacturerStatus `json:"status,omitempty"`
	PipelineID *string             `json:"pipelineId,omitempty"`
}

// ManufacturerFilters represents filters for manufacturer queries.
// A nil field, empty string or the literal "all" disables that filter.
type ManufacturerFilters struct {
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
}

// ExtractRequest triggers the extraction workflow for a manufacturer.
// The operator must confirm explicitly before any state changes.
type ExtractRequest struct {
	Confirmed bool `json:"confirmed"`
}

// ExtractResponse reports the started extraction
type ExtractResponse struct {
	Success     bool    `json:"success"`
	Message     *string `json:"message,omitempty"`
	ExecutionID string  `json:"pipelineExecutionId,omitempty"`
}

// ExtractionStatusData is the payload of the extraction status read
type ExtractionStatusData struct {
	Status           ManufacturerStatus `json:"status"`
	ExtractionStatus ExtractionStatus   `json:"extractionStatus"`
	ProductCount     int64              `json:"productCount"`
}

// PaginationInfo represents pagination information
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// ManufacturerResponse represents a single manufacturer response
type ManufacturerResponse struct {
	Success bool          `json:"success"`
	Data    *Manufacturer `json:"data"`
	Message *string       `json:"message,omitempty"`
}

// ManufacturerListResponse represents a list of manufacturers response
type ManufacturerListResponse struct {
	Success    bool            `json:"success"`
	Data       []Manufacturer  `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// ExtractionStatusResponse wraps the extraction status read
type ExtractionStatusResponse struct {
	Success bool                  `json:"success"`
	Data    *ExtractionStatusData `json:"data"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Error represents error details
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// SuccessResponse is the generic success envelope
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// TableName returns the table name for the Manufacturer model
func (Manufacturer) TableName() string {
	return "manufacturers"
}

// TableName returns the table name for the SearchHistory model
func (SearchHistory) TableName() string {
	return "search_history"
}
