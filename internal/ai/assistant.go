package ai

import (
	"context"
	"errors"
)

// Role is the author of a chat message as understood by chat-completion APIs.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	// ErrNotConfigured is returned when no API credential is available for the provider.
	ErrNotConfigured = errors.New("language model api key is not configured")
	// ErrEmptyCompletion is returned when the service answered without any usable content.
	ErrEmptyCompletion = errors.New("language model returned empty completion")
)

type Message struct {
	Role    Role
	Content string
}

// Request is a single chat-completion call.
type Request struct {
	// System is sent as the leading system message. Empty means none.
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

type ChatModel interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// Unconfigured is used in place of a provider when the credential is missing.
// Every call fails with ErrNotConfigured.
type Unconfigured struct {
	Provider string
}

func (u Unconfigured) Complete(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

func (u Unconfigured) Model() string { return "" }
