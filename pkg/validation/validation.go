package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/habedi/conflux/pkg/clierr"
)

const (
	MinThreads = 1
	MaxThreads = 20

	MinLimit = 1
	MaxLimit = 250
)

var spaceKeyPattern = regexp.MustCompile(`^~?[A-Za-z0-9_]+$`)

func ValidateThreadCount(threads int) error {
	if threads < MinThreads || threads > MaxThreads {
		return clierr.NewValidation(fmt.Sprintf("thread count must be between %d and %d, got %d", MinThreads, MaxThreads, threads), nil)
	}
	return nil
}

func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return clierr.NewValidation(fmt.Sprintf("limit must be between %d and %d, got %d", MinLimit, MaxLimit, limit), nil)
	}
	return nil
}

// ValidatePageID accepts the numeric content IDs Confluence assigns.
func ValidatePageID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return clierr.NewValidation("page ID cannot be empty", nil)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return clierr.NewValidation(fmt.Sprintf("page ID must be numeric, got %q", id), nil)
		}
	}
	return nil
}

// ValidateSpaceKey accepts global keys like "DEV" and personal keys like "~jdoe".
func ValidateSpaceKey(key string) error {
	if !spaceKeyPattern.MatchString(key) {
		return clierr.NewValidation(fmt.Sprintf("invalid space key: %q", key), nil)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return clierr.NewValidation(fmt.Sprintf("%s cannot be empty", fieldName), nil)
	}
	return nil
}

func ValidateSiteURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return clierr.NewValidation(fmt.Sprintf("invalid site URL: %q (expected e.g. https://example.atlassian.net)", raw), err)
	}
	return nil
}

func ValidateExportFormat(format string) error {
	validFormats := map[string]bool{
		"json": true,
		"csv":  true,
	}
	if !validFormats[format] {
		return clierr.NewValidation(fmt.Sprintf("invalid export format: %s (must be one of: json, csv)", format), nil)
	}
	return nil
}
