// Model requests: the legacy model-name form and the structured form
package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ModelRequest is either a LegacyModelName or a StructuredModelRequest
type ModelRequest interface {
	isModelRequest()
}

// LegacyModelName names a model served by DefaultProvider at DefaultTemperature
type LegacyModelName string

// StructuredModelRequest selects provider, model and temperature explicitly.
// Provider is kept as raw text since it comes from external configuration;
// it is validated when the request is dispatched.
type StructuredModelRequest struct {
	Provider    string   `json:"provider" yaml:"provider"`
	Model       string   `json:"model" yaml:"model"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

func (LegacyModelName) isModelRequest()        {}
func (StructuredModelRequest) isModelRequest() {}

// EffectiveTemperature returns the requested temperature or DefaultTemperature
func (r StructuredModelRequest) EffectiveTemperature() float64 {
	if r.Temperature == nil {
		return DefaultTemperature
	}
	return *r.Temperature
}

// ParseModelRequest decodes a textual request: a JSON object becomes a
// StructuredModelRequest, anything else is taken as a legacy model name.
func ParseModelRequest(s string) (ModelRequest, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return LegacyModelName(s), nil
	}
	var req StructuredModelRequest
	if err := json.Unmarshal([]byte(trimmed), &req); err != nil {
		return nil, fmt.Errorf("parse model request: %w", err)
	}
	return req, nil
}

// DescribeModelRequest renders a request for logs and CLI output
func DescribeModelRequest(req ModelRequest) string {
	switch r := req.(type) {
	case LegacyModelName:
		return fmt.Sprintf("%s (legacy)", string(r))
	case StructuredModelRequest:
		return fmt.Sprintf("%s/%s@%.2f", r.Provider, r.Model, r.EffectiveTemperature())
	case *StructuredModelRequest:
		if r == nil {
			return "<empty>"
		}
		return DescribeModelRequest(*r)
	default:
		return "<empty>"
	}
}
