package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownCompanyError_NamesAvailableCompanies(t *testing.T) {
	err := NewUnknownCompanyError("fantasie", []string{"seehafer_elemente", "werner_bau"})

	assert.Equal(t, ErrCodeUnknownCompany, err.Code)
	assert.False(t, err.Retryable)
	assert.Contains(t, err.Message, "fantasie")
	assert.Contains(t, err.Message, "seehafer_elemente, werner_bau")
}

func TestCodeOf_UnwrapsChains(t *testing.T) {
	inner := NewStorageFailedError("put campaign", assert.AnError)
	wrapped := fmt.Errorf("run failed: %w", inner)

	assert.Equal(t, ErrCodeStorageFailed, CodeOf(wrapped))
	assert.Equal(t, ErrorCode(""), CodeOf(assert.AnError))
}

func TestIsConfigurationError(t *testing.T) {
	assert.True(t, IsConfigurationError(NewUnknownCompanyError("x", nil)))
	assert.True(t, IsConfigurationError(NewSegmentTemplateMissingError("x", "y")))
	assert.True(t, IsConfigurationError(NewRulesValidationFailedError("broken")))
	assert.False(t, IsConfigurationError(NewAIGenerationFailedError(assert.AnError)))
	assert.False(t, IsConfigurationError(NewExportFailedError(assert.AnError)))
	assert.False(t, IsConfigurationError(assert.AnError))
}

func TestRetryTaxonomy(t *testing.T) {
	require.True(t, IsRetryableErrorCode(ErrCodeAIGenerationFailed))
	require.True(t, IsRetryableErrorCode(ErrCodeStorageFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeAIGenerationFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeStorageFailed))

	for _, code := range []ErrorCode{
		ErrCodeLeadValidationFailed,
		ErrCodeUnknownCompany,
		ErrCodeTemplateNotFound,
		ErrCodeRulesValidationFailed,
		ErrCodeExportFailed,
	} {
		assert.False(t, IsRetryableErrorCode(code), string(code))
	}
}

func TestStandardError_ErrorFormat(t *testing.T) {
	err := NewSegmentTemplateMissingError("seehafer_elemente", "privat")
	assert.Equal(t,
		"StandardError[TEMPLATE_NOT_FOUND]: Kein Template für Segment 'privat' bei Firma 'seehafer_elemente'",
		err.Error())
}
