// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm talks to an OpenAI-compatible chat completion endpoint and
// cleans up what the model sends back.
package llm

import (
	"context"
	"unicode/utf8"
)

// Message roles understood by the completion endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a conversation.
type Message struct {
	Role    string
	Content string
}

// Request is a single completion call.
type Request struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// UserPrompt builds a request holding a single user message.
func UserPrompt(prompt string, temperature float32, maxTokens int) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// PromptChars returns the number of characters sent in the request.
func (r Request) PromptChars() int {
	n := 0
	for _, m := range r.Messages {
		n += utf8.RuneCountInString(m.Content)
	}
	return n
}

// Completer returns the generated text for a request, trimmed of
// surrounding whitespace. Stages depend on this interface so tests can
// supply a stub.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts an ordinary function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f(ctx, req).
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
