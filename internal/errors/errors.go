package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNodeNotConfigured = errors.New("node not configured")
	ErrNodeUnreachable   = errors.New("node unreachable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrTimeout           = errors.New("request timeout")
	ErrNoMatches         = errors.New("no matches")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// ReverbError wraps an error with a user-friendly suggestion.
type ReverbError struct {
	Err        error
	Suggestion string
}

func (e *ReverbError) Error() string {
	return e.Err.Error()
}

func (e *ReverbError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &ReverbError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a ReverbError with suggestion
	var reverbErr *ReverbError
	if errors.As(err, &reverbErr) && reverbErr.Suggestion != "" {
		return reverbErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Missing node settings
	if errors.Is(err, ErrNodeNotConfigured) || strings.Contains(errStr, "node not configured") {
		return "Set node.url in ~/.reverbrc or run 'reverb config init'"
	}

	// Credential rejected
	if errors.Is(err, ErrUnauthorized) || strings.Contains(errStr, "status 401") ||
		strings.Contains(errStr, "status 403") {
		return "Check node.password in ~/.reverbrc against the node's configured password"
	}

	// Node down or wrong address
	if errors.Is(err, ErrNodeUnreachable) || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return "Check that the node is running and node.url points at its REST port"
	}

	// Deadline elapsed
	if errors.Is(err, ErrTimeout) || strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "timeout") {
		return "The node did not answer in time. Raise client.rest_timeout or check the node's load"
	}

	// Route planner not configured
	if strings.Contains(errStr, "status 404") && strings.Contains(errStr, "routeplanner") {
		return "The node has no route planner configured"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'reverb config init' to set up your configuration"
	}

	// Server errors
	if strings.Contains(errStr, "status 5") || strings.Contains(errStr, "server error") {
		return "The node is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
