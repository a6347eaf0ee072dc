// Package openai provides the OpenAI-family client handle.
//
// The client implements llm.Client on top of github.com/sashabaranov/go-openai.
// It is bound to one model and one default temperature at construction time;
// every request is sent with that temperature unless the request overrides it.
//
// NewCompatibleClient serves any endpoint that speaks the OpenAI chat
// completions protocol and is used by the groq package.
package openai
