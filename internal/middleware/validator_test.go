package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReportID(t *testing.T) {
	assert.NoError(t, ValidateReportID("6f1f4f9e-8c1d-4f3a-9b2e-0a1b2c3d4e5f"))
	assert.Error(t, ValidateReportID(""))
	assert.Error(t, ValidateReportID("not-a-uuid"))
	assert.Error(t, ValidateReportID("../../etc/passwd"))
}

func TestValidateTargetLang(t *testing.T) {
	assert.NoError(t, ValidateTargetLang("en"))
	assert.NoError(t, ValidateTargetLang("id"))
	assert.NoError(t, ValidateTargetLang("pt-BR"))
	assert.Error(t, ValidateTargetLang(""))
	assert.Error(t, ValidateTargetLang("english language"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Annual Report", SanitizeString("  Annual Report\x00 "))
	assert.Equal(t, "ab", SanitizeString("a\x07b"))
}

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	tb := NewTokenBucket(2, 1)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}
