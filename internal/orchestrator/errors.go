package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"plusverify/internal/checker"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrValidationFailed     = errors.New("validation error")
	ErrArithmeticMismatch   = checker.ErrArithmeticMismatch
	ErrOutputFailed         = errors.New("output error")
)

// VerifyError represents a structured error with actionable guidance
type VerifyError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *VerifyError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *VerifyError) Unwrap() error {
	return e.Cause
}

// Is matches the error category so callers can use errors.Is(err, ErrValidationFailed)
func (e *VerifyError) Is(target error) bool {
	return e.Type == target
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *VerifyError {
	guidance := "Check your configuration file syntax and values. " +
		"Use 'plusverify --config /path/to/config.toml' to specify a different config file."

	if cause != nil {
		switch {
		case strings.Contains(cause.Error(), "permission"):
			guidance = "Check file permissions for your configuration file. " +
				"Ensure you have read access to ~/.config/plusverify/"
		case strings.Contains(cause.Error(), "pushgateway"):
			guidance = "Set pushgateway_url to a full URL such as http://localhost:9091, or leave it empty to skip pushing metrics."
		case strings.Contains(cause.Error(), "trials"):
			guidance = "Trials must be a whole number, zero or greater. Use --trials to override the configured value."
		case strings.Contains(cause.Error(), "seed"):
			guidance = "Seed must be a non-negative whole number. Use --seed to override the configured value, or 0 to draw one from the OS."
		}
	}

	return &VerifyError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(field string, value interface{}, reason string) *VerifyError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "subject":
		guidance = "Run 'plusverify list' to see the available subjects."
	case "config_path":
		guidance = "Configuration file path must be valid and accessible. " +
			"Ensure the file exists and you have read permissions."
	}

	return &VerifyError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
	}
}

// NewMismatchError wraps a checker mismatch with the seed needed to replay it
func NewMismatchError(subject string, seed uint64, cause *checker.MismatchError) *VerifyError {
	return &VerifyError{
		Type:     ErrArithmeticMismatch,
		Message:  fmt.Sprintf("subject %s disagreed with the reference at trial %d: f(%d, %d) = %d, expected %d", subject, cause.Trial, cause.A, cause.B, cause.Actual, cause.Expected),
		Guidance: fmt.Sprintf("Replay this run with: plusverify --subject %s --seed %d", subject, seed),
		Cause:    cause,
	}
}

func NewOutputError(target string, cause error) *VerifyError {
	message := fmt.Sprintf("failed to write report to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if path, ok := strings.CutPrefix(target, "file:"); ok {
		guidance = fmt.Sprintf("Failed to write to file '%s'. Check that the directory exists "+
			"and you have write permissions.", path)
	}

	return &VerifyError{
		Type:     ErrOutputFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

// IsMismatch reports whether err is an arithmetic mismatch rather than an operational failure
func IsMismatch(err error) bool {
	return errors.Is(err, ErrArithmeticMismatch)
}
