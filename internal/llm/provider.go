package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction every agent role talks through.
// A role call is one Generate invocation with a role-specific schema.
type Provider interface {
	// Generate sends a prompt to the model and returns its output.
	// When the request carries a Schema, the returned Content is JSON
	// that has been validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes one model invocation.
type Request struct {
	// System is the role instruction block (the agent's system prompt).
	System string

	// Messages is the conversation. Varix roles are single-turn, so this
	// usually holds exactly one user message.
	Messages []Message

	// Schema, when set, makes the provider request structured output and
	// validate the result against it. When nil, Content is raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0,1]. Zero means deterministic.
	Temperature float64
}

// Message is a single conversation entry.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON shape a role expects back from the model.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "identified-skills".
	Name string

	// Description tells the model what this output represents.
	Description string

	// Definition is the JSON Schema definition.
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	// Content is the generated output. With a Schema in the request this
	// is the validated JSON object.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
