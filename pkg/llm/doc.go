// Package llm provides abstractions and interfaces for Large Language Model clients.
//
// This package defines the core interface that all provider handles implement,
// along with common types for requests, responses, messages, and streaming.
//
// The main components include:
//
// - Client interface: Core LLM client functionality
// - ModelRequest: the legacy model-name form and the structured provider/model/temperature form
// - Provider: the closed set of supported provider families
// - Configuration: Provider-agnostic client configuration
// - Error handling: Standardized error types
//
// Provider implementations are located in separate packages under /pkg/providers/
// to maintain clean separation of concerns and avoid import cycles.
package llm
