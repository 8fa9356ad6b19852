package llm

import "context"

// Wire roles for transcript turns sent to the model
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Tool names the assistant may invoke instead of replying with text
const (
	ToolGenerateSequences = "generate_outreach_sequences"
	ToolModifySequences   = "modify_sequences"
)

// ArgModificationInstruction is the single required argument of the
// modify_sequences tool
const ArgModificationInstruction = "modification_instruction"

// Turn is one transcript entry on the wire
type Turn struct {
	Role string
	Text string
}

// ToolCall is a structured action invocation returned by the model
type ToolCall struct {
	Name string
	Args map[string]any
}

// Result is a single model reply: free text, a tool call, or neither
// (both fields empty when the model returned no usable content)
type Result struct {
	Text string
	Call *ToolCall
}

// GenerationConfig constrains decoding
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// ChatConfig is the decoding configuration for open conversation
var ChatConfig = GenerationConfig{
	Temperature:     0.7,
	TopP:            0.95,
	TopK:            40,
	MaxOutputTokens: 8192,
}

// EmbeddingTask selects the embedding task type
type EmbeddingTask string

const (
	EmbedQuery    EmbeddingTask = "retrieval_query"
	EmbedDocument EmbeddingTask = "retrieval_document"
)

// Provider defines the interface to the generative model service
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Converse sends a full ordered transcript with the outreach tools
	// declared and returns the model's reply.
	Converse(ctx context.Context, history []Turn) (*Result, error)

	// Generate runs a single constrained-decoding prompt with no tools.
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)

	// Embed computes a fixed-length embedding for the given text.
	Embed(ctx context.Context, text string, task EmbeddingTask) ([]float32, error)
}
