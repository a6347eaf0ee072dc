package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/primoagent/modelfactory/pkg/llm"
)

// ModelSlot holds the request configured for one use case. In YAML a
// scalar is a legacy model name and a mapping is a structured request.
type ModelSlot struct {
	Request llm.ModelRequest
}

// Legacy returns a slot holding a plain model name
func Legacy(model string) ModelSlot {
	return ModelSlot{Request: llm.LegacyModelName(model)}
}

// Structured returns a slot holding a structured request
func Structured(provider llm.Provider, model string, temperature float64) ModelSlot {
	return ModelSlot{Request: llm.StructuredModelRequest{
		Provider:    string(provider),
		Model:       model,
		Temperature: llm.Float64(temperature),
	}}
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *ModelSlot) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			s.Request = nil
			return nil
		}
		s.Request = llm.LegacyModelName(node.Value)
		return nil
	case yaml.MappingNode:
		var req llm.StructuredModelRequest
		if err := node.Decode(&req); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		s.Request = req
		return nil
	default:
		return fmt.Errorf("line %d: model must be a name or a mapping with provider/model/temperature", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler
func (s ModelSlot) MarshalYAML() (interface{}, error) {
	switch r := s.Request.(type) {
	case llm.LegacyModelName:
		return string(r), nil
	case llm.StructuredModelRequest:
		return r, nil
	case *llm.StructuredModelRequest:
		return r, nil
	default:
		return nil, nil
	}
}
