package validation

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "go-photo-feedback/internal/errors"
)

// URLValidator validates photo URLs before they are fetched.
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator creates a validator that accepts http and https URLs
// from any host.
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
	}
}

// NewURLValidatorWithHosts restricts accepted URLs to the given hosts.
func NewURLValidatorWithHosts(hosts []string) *URLValidator {
	v := NewURLValidator()
	v.allowedHosts = hosts
	return v
}

// Validate checks that the raw URL is well formed and allowed.
func (v *URLValidator) Validate(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return apperrors.NewValidationError("photo URL is required", nil)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationError("photo URL is not a valid URL", err)
	}

	if !v.schemeAllowed(parsed.Scheme) {
		return apperrors.NewValidationError(
			fmt.Sprintf("URL scheme %q is not allowed, use one of: %s", parsed.Scheme, strings.Join(v.allowedSchemes, ", ")), nil)
	}

	if parsed.Host == "" {
		return apperrors.NewValidationError("photo URL has no host", nil)
	}

	if len(v.allowedHosts) > 0 && !v.hostAllowed(parsed.Hostname()) {
		return apperrors.NewValidationError(
			fmt.Sprintf("host %q is not in the allowed host list", parsed.Hostname()), nil)
	}

	return nil
}

func (v *URLValidator) schemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

func (v *URLValidator) hostAllowed(host string) bool {
	for _, allowed := range v.allowedHosts {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}
