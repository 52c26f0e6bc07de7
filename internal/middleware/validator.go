package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	reportIDPattern   = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
	targetLangPattern = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,8})?$`)
)

// ValidateReportID validates the uuid report identifier format
func ValidateReportID(id string) error {
	if id == "" {
		return fmt.Errorf("report ID cannot be empty")
	}
	if !reportIDPattern.MatchString(strings.ToLower(id)) {
		return fmt.Errorf("invalid report ID format")
	}
	return nil
}

// ValidateTargetLang validates a language tag like "en", "id" or "pt-BR"
func ValidateTargetLang(lang string) error {
	if lang == "" {
		return fmt.Errorf("target language cannot be empty")
	}
	if !targetLangPattern.MatchString(lang) {
		return fmt.Errorf("invalid target language tag")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
