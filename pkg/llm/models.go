// Model information and capabilities
package llm

// ModelInfo contains information about the model a client is bound to
type ModelInfo struct {
	Name              string  `json:"name"`
	Provider          string  `json:"provider"`
	Temperature       float64 `json:"temperature"`
	MaxTokens         int     `json:"max_tokens"`
	SupportsTools     bool    `json:"supports_tools"`
	SupportsVision    bool    `json:"supports_vision"`
	SupportsStreaming bool    `json:"supports_streaming"`
}
