package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charliek/tracehelper/internal/domain"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors
func Validate(config *Config) error {
	var errs []string

	if err := ValidateAddress(config.Service.Address); err != nil {
		errs = append(errs, "service."+err.Error())
	}

	if d, err := time.ParseDuration(config.Service.Timeout); err != nil {
		errs = append(errs, fmt.Sprintf("service.timeout: invalid duration %q", config.Service.Timeout))
	} else if d <= 0 {
		errs = append(errs, fmt.Sprintf("service.timeout: must be positive, got %s", d))
	}

	if strings.TrimSpace(config.Download.Dir) == "" {
		errs = append(errs, "download.dir: directory is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(errs, "; "))
	}

	return nil
}

// ValidateAddress checks that addr is an absolute http(s) URL
func ValidateAddress(addr string) error {
	if addr == "" {
		return &ValidationError{Field: "address", Message: "address cannot be empty"}
	}
	u, err := url.Parse(addr)
	if err != nil {
		return &ValidationError{Field: "address", Message: fmt.Sprintf("invalid URL %q", addr)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "address", Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme)}
	}
	if u.Host == "" {
		return &ValidationError{Field: "address", Message: "host is required"}
	}
	return nil
}
