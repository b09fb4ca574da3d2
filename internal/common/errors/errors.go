// Package errors provides standardized error handling for the lead pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Per-row ingestion errors. Non-fatal: the row is skipped and the
	// campaign continues.
	ErrCodeLeadValidationFailed ErrorCode = "LEAD_VALIDATION_FAILED"

	// Rule registry / template set inconsistencies. Fatal to the call:
	// they signal a configuration bug, not a data problem.
	ErrCodeUnknownCompany        ErrorCode = "UNKNOWN_COMPANY"
	ErrCodeTemplateNotFound      ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeRulesValidationFailed ErrorCode = "RULES_VALIDATION_FAILED"

	// Recovered internally by the deterministic fallback.
	ErrCodeAIGenerationFailed ErrorCode = "AI_GENERATION_FAILED"

	ErrCodeStorageFailed ErrorCode = "STORAGE_FAILED"
	ErrCodeExportFailed  ErrorCode = "EXPORT_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from an error chain, or "" if the error
// is not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// NewLeadValidationFailedError creates a non-retryable per-row validation error.
func NewLeadValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadValidationFailed,
		Message:   "Lead row failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownCompanyError creates a non-retryable classification entry error.
// The details name the configured company ids so the operator can correct
// the filter.
func NewUnknownCompanyError(companyID string, available []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCompany,
		Message:   fmt.Sprintf("Unbekannte Firma: '%s'. Verfügbar: %s", companyID, strings.Join(available, ", ")),
		Details:   fmt.Sprintf("companyId: %s", companyID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompanyTemplatesMissingError signals that a company has no templates at all.
func NewCompanyTemplatesMissingError(companyID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   fmt.Sprintf("Keine Templates für Firma '%s' vorhanden", companyID),
		Details:   fmt.Sprintf("companyId: %s", companyID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSegmentTemplateMissingError signals a resolvable segment with no template.
func NewSegmentTemplateMissingError(companyID, segmentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   fmt.Sprintf("Kein Template für Segment '%s' bei Firma '%s'", segmentID, companyID),
		Details:   fmt.Sprintf("companyId: %s, segmentId: %s", companyID, segmentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRulesValidationFailedError creates a non-retryable registry load error.
func NewRulesValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRulesValidationFailed,
		Message:   "Segmentation rules failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAIGenerationFailedError creates a retryable external provider error.
func NewAIGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAIGenerationFailed,
		Message:   "Icebreaker generation API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageFailedError creates a retryable repository error.
func NewStorageFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "Campaign storage operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportFailedError creates a non-retryable export error.
func NewExportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFailed,
		Message:   "CSV export failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsConfigurationError reports whether err is a registry/template
// inconsistency that must abort the whole batch rather than skip a row.
func IsConfigurationError(err error) bool {
	switch CodeOf(err) {
	case ErrCodeUnknownCompany, ErrCodeTemplateNotFound, ErrCodeRulesValidationFailed:
		return true
	}
	return false
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAIGenerationFailed:
		return 3 // total attempts for the external provider
	case ErrCodeStorageFailed:
		return 2
	default:
		return 0 // configuration and validation errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}
