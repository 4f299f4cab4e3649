package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ecolink/ecolink/internal/ai"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 20 * time.Second
)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models    contentModels
	modelName string
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, timeout time.Duration) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{models: client.Models, modelName: model}, nil
}

// GenerateContent sends the prompt to Gemini and returns the text of the first
// part of the first candidate.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", ai.NewTransportError(0, false, errors.New("gemini generator is not initialized"))
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", transportError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", ai.NewParseError(errors.New("response has no candidates"))
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return "", ai.NewParseError(errors.New("candidate has no content"))
	}

	if len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", ai.NewParseError(errors.New("content has no parts"))
	}

	text := content.Parts[0].Text
	if text == "" {
		return "", ai.NewParseError(errors.New("first part has no text"))
	}

	return text, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func transportError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ai.NewTransportError(apiErr.Code, ai.TemporaryStatus(apiErr.Code), fmt.Errorf("generate content: %w", err))
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return ai.NewTransportError(apiErrPtr.Code, ai.TemporaryStatus(apiErrPtr.Code), fmt.Errorf("generate content: %w", err))
	}

	temporary := !errors.Is(err, context.Canceled)
	return ai.NewTransportError(0, temporary, fmt.Errorf("generate content: %w", err))
}
