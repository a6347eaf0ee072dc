// Error types and handling
package llm

import (
	"fmt"
	"strings"
)

// Error types
const (
	ErrorTypeConfiguration  = "configuration_error"
	ErrorTypeAuthentication = "authentication_error"
	ErrorTypeAPI            = "api_error"
)

// Error codes
const (
	CodeMissingModel        = "missing_model"
	CodeUnsupportedProvider = "unsupported_provider"
	CodeMissingAPIKey       = "missing_api_key"
	CodeUnknown             = "unknown_error"
)

// MissingModelMessage is the message carried by every missing model error
const MissingModelMessage = "Model name is required in configuration."

// Sentinels for errors.Is. Matching is done on Code only.
var (
	ErrMissingModel        = &Error{Code: CodeMissingModel, Type: ErrorTypeConfiguration}
	ErrUnsupportedProvider = &Error{Code: CodeUnsupportedProvider, Type: ErrorTypeConfiguration}
	ErrMissingAPIKey       = &Error{Code: CodeMissingAPIKey, Type: ErrorTypeAuthentication}
)

// Error represents a standardized LLM error
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsConfigurationError reports whether e was raised while validating configuration
func (e *Error) IsConfigurationError() bool {
	return e.Type == ErrorTypeConfiguration
}

// NewMissingModelError returns the error for a structured request without a model name
func NewMissingModelError() *Error {
	return &Error{
		Code:    CodeMissingModel,
		Message: MissingModelMessage,
		Type:    ErrorTypeConfiguration,
	}
}

// NewUnsupportedProviderError returns the error for a provider outside the supported set
func NewUnsupportedProviderError(provider string) *Error {
	names := make([]string, 0, len(supportedProviders))
	for _, p := range supportedProviders {
		names = append(names, string(p))
	}
	return &Error{
		Code: CodeUnsupportedProvider,
		Message: fmt.Sprintf("Unsupported provider: %q. Supported providers: %s",
			provider, strings.Join(names, ", ")),
		Type: ErrorTypeConfiguration,
	}
}

// NewMissingAPIKeyError returns the error reported by a client used without credentials
func NewMissingAPIKeyError(provider Provider) *Error {
	return &Error{
		Code:    CodeMissingAPIKey,
		Message: fmt.Sprintf("API key is required for %s", provider),
		Type:    ErrorTypeAuthentication,
	}
}
