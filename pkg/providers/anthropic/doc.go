// Package anthropic provides the Anthropic-family client handle on top of
// github.com/anthropics/anthropic-sdk-go.
//
// Besides model and temperature the handle carries an optional per-request
// timeout and a list of stop sequences. System messages are lifted out of
// the conversation into the request's system prompt.
package anthropic
