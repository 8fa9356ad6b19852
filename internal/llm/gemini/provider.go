package gemini

import (
	"context"
	"fmt"

	"github.com/REDDITARUN/helix/internal/config"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Provider implements llm.Provider backed by the Gemini API
type Provider struct {
	apiKey         string
	chatModel      string
	sequenceModel  string
	embeddingModel string
}

// NewProvider creates a new Gemini provider
func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		apiKey:         cfg.APIKey,
		chatModel:      cfg.ChatModel,
		sequenceModel:  cfg.SequenceModel,
		embeddingModel: cfg.EmbeddingModel,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Converse sends the transcript with both outreach tools declared. The last
// turn must be the pending user message; everything before it is history.
func (p *Provider) Converse(ctx context.Context, history []llm.Turn) (*llm.Result, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.chatModel)
	applyConfig(model, llm.ChatConfig)
	model.Tools = outreachTools()

	cs := model.StartChat()
	last := history[len(history)-1]
	for _, t := range history[:len(history)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  t.Role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(last.Text))
	if err != nil {
		return nil, fmt.Errorf("gemini chat error: %w", err)
	}

	return parseResult(resp), nil
}

// Generate runs a one-shot prompt with constrained decoding and no tools
func (p *Provider) Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.sequenceModel)
	applyConfig(model, cfg)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}
	if output == "" {
		return "", fmt.Errorf("no text content in gemini response")
	}
	return output, nil
}

// Embed computes a 768-dim embedding with the given task type
func (p *Provider) Embed(ctx context.Context, text string, task llm.EmbeddingTask) ([]float32, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	em := client.EmbeddingModel(p.embeddingModel)
	switch task {
	case llm.EmbedDocument:
		em.TaskType = genai.TaskTypeRetrievalDocument
	default:
		em.TaskType = genai.TaskTypeRetrievalQuery
	}

	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding error: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding from gemini")
	}
	return res.Embedding.Values, nil
}

func applyConfig(model *genai.GenerativeModel, cfg llm.GenerationConfig) {
	model.Temperature = genai.Ptr(cfg.Temperature)
	model.TopP = genai.Ptr(cfg.TopP)
	model.TopK = genai.Ptr(cfg.TopK)
	model.MaxOutputTokens = genai.Ptr(cfg.MaxOutputTokens)
}

// parseResult classifies the first candidate into text and/or a tool call.
// Malformed shapes collapse to an empty Result; routing decides what to
// record, never this layer.
func parseResult(resp *genai.GenerateContentResponse) *llm.Result {
	result := &llm.Result{}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return result
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.FunctionCall:
			if result.Call == nil {
				args := make(map[string]any, len(v.Args))
				for k, val := range v.Args {
					args[k] = val
				}
				result.Call = &llm.ToolCall{Name: v.Name, Args: args}
			}
		case genai.Text:
			result.Text += string(v)
		}
	}

	return result
}
