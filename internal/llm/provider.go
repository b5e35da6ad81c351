package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the raw completion text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the completion.
	// The response Text is opaque: quiz questions are expected to contain a
	// JSON object somewhere in the text, but extraction and validation are
	// the caller's job (see internal/quizgen).
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Embedder computes a fixed-dimension embedding vector for a text.
type Embedder interface {
	// Embed returns the embedding vector for the given input text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbeddingModelID returns the embedding model identifier.
	EmbeddingModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. For single-turn generation
	// (the only case in kayfabe), this contains one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Question generation runs at 1.0 so repeated calls vary.
	Temperature float64
}

// Message represents a single message in the conversation.
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

// Response holds the LLM's output.
type Response struct {
	// Text is the raw completion text, never assumed to be pure JSON.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
