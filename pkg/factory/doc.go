// Package factory selects and builds provider clients.
//
// A Factory maps a model request onto one of the supported provider
// families and returns a fresh llm.Client. Requests come in two shapes:
// a legacy model name, served by OpenAI at the default temperature, or a
// structured provider/model/temperature record. Invalid requests fail with
// an *llm.Error of type configuration_error before any client is built.
//
// Four accessors resolve the fixed use-case slots of config.Settings.
//
// Example usage:
//
//	import (
//	    "github.com/primoagent/modelfactory/pkg/config"
//	    "github.com/primoagent/modelfactory/pkg/factory"
//	    "github.com/primoagent/modelfactory/pkg/llm"
//	)
//
//	settings, err := config.Load("models.yaml")
//	...
//	f := factory.New(factory.WithSettings(settings))
//	client, err := f.CreateModel(llm.StructuredModelRequest{
//	    Provider:    "anthropic",
//	    Model:       "claude-3-opus",
//	    Temperature: llm.Float64(0.2),
//	})
//	summarizer, err := f.EnhancedSummaryModel()
package factory
