package providers

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Gemini implements Generator over the Google GenAI SDK. Client creation
// needs a context, so it is deferred to the first Generate call.
type Gemini struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

func newGemini(apiKey, model string) (Generator, error) {
	return &Gemini{apiKey: apiKey, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) ensureClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (Response, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return Response{}, err
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: req.User}}},
	}

	var out Response
	err = retryWithBackoff(ctx, 3, func() error {
		result, err := client.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			return classify(err)
		}
		if result == nil || len(result.Candidates) == 0 {
			return fmt.Errorf("empty response from Gemini API")
		}

		out = Response{Content: result.Text()}
		if result.UsageMetadata != nil {
			out.InputTokens = int(result.UsageMetadata.PromptTokenCount)
			out.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
		}
		return nil
	})

	return out, err
}
