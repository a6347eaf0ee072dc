// Package groq provides the Groq-family client handle.
//
// Groq serves open models (Llama, Mixtral, Gemma) behind an OpenAI-compatible
// API, so the client reuses the openai package against DefaultBaseURL and
// only supplies Groq model metadata.
package groq
