package providers

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic implements Generator over the official Anthropic SDK.
type Anthropic struct {
	client anthropic.Client
	model  anthropic.Model
}

func newAnthropic(apiKey, model string) (Generator, error) {
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Generate(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	var out Response
	err := retryWithBackoff(ctx, 3, func() error {
		resp, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return classify(err)
		}
		if resp == nil || len(resp.Content) == 0 {
			return fmt.Errorf("empty response from Anthropic API")
		}

		var content string
		for _, block := range resp.Content {
			if block.Type == "text" {
				content += block.Text
			}
		}

		out = Response{
			Content:      content,
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		}
		return nil
	})

	return out, err
}
