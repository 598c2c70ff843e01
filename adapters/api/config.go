package api

import (
	"fmt"
	"time"
)

// Pagination styles understood by the reader
const (
	PaginationNone   = "none"
	PaginationOffset = "offset"
	PaginationPage   = "page"
	PaginationCursor = "cursor"
)

// ReaderConfig describes a JSON endpoint serving listing records
type ReaderConfig struct {
	BaseURL string `json:"base_url"`
	// DataPath is a gjson path to the record array; empty means the document root.
	DataPath       string            `json:"data_path"`
	Headers        map[string]string `json:"headers"`
	AuthToken      string            `json:"auth_token"`
	Timeout        time.Duration     `json:"timeout"`
	PaginationType string            `json:"pagination_type"`
	PageSize       int               `json:"page_size"`
	MaxPages       int               `json:"max_pages"`
}

// DefaultReaderConfig returns sensible defaults for a single-document endpoint
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Timeout:        30 * time.Second,
		PaginationType: PaginationNone,
		PageSize:       1000,
		MaxPages:       50,
	}
}

// Validate checks if the configuration is valid
func (c ReaderConfig) Validate() error {
	if c.BaseURL == "" {
		return &ValidationError{Field: "BaseURL", Message: "is required"}
	}
	if c.Timeout <= 0 {
		return &ValidationError{Field: "Timeout", Message: "must be positive"}
	}
	switch c.PaginationType {
	case PaginationNone, PaginationOffset, PaginationPage, PaginationCursor:
	default:
		return &ValidationError{Field: "PaginationType", Message: fmt.Sprintf("unknown style %q", c.PaginationType)}
	}
	if c.PaginationType != PaginationNone && (c.PageSize <= 0 || c.MaxPages <= 0) {
		return &ValidationError{Field: "PageSize", Message: "page size and max pages must be positive when paginating"}
	}
	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
