package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter implements Generator via OpenRouter's OpenAI-compatible
// Chat Completions endpoint.
type OpenRouter struct {
	client openai.Client
	model  string
}

func newOpenRouter(apiKey, model string) (Generator, error) {
	return &OpenRouter{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(openRouterBaseURL),
		),
		model: model,
	}, nil
}

func (o *OpenRouter) Name() string { return "openrouter" }

func (o *OpenRouter) Generate(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:     o.model,
		Messages:  messages,
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	var out Response
	err := retryWithBackoff(ctx, 3, func() error {
		resp, err := o.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return classify(err)
		}
		if resp == nil || len(resp.Choices) == 0 {
			return fmt.Errorf("empty response from OpenRouter API")
		}

		out = Response{
			Content:      resp.Choices[0].Message.Content,
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		}
		return nil
	})

	return out, err
}
