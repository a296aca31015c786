// Package llm defines the text-generation backend contract.
//
// The engine works against any backend honoring this shape; the bundled
// implementation is a canned-response mock standing in for a hosted model.
package llm

import "context"

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn handed to the backend.
type Message struct {
	Role    Role
	Content string
}

// Usage reports token accounting for one completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the backend's completion result.
type Response struct {
	Content      string
	Usage        Usage
	Model        string
	FinishReason string
}

// Completer generates a completion from an ordered message sequence.
// Score-affecting calls must honor ctx for cancellation.
type Completer interface {
	GenerateCompletion(ctx context.Context, messages []Message) (Response, error)
}
