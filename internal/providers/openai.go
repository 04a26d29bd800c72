package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAI implements Generator using the official SDK's Responses API.
type OpenAI struct {
	client openai.Client
	model  string
}

func newOpenAI(apiKey, model string) (Generator, error) {
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Generate(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	// The Responses API takes a single input string; fold the system
	// prompt in ahead of the user prompt.
	input := req.User
	if req.System != "" {
		input = fmt.Sprintf("System: %s\n\n%s", req.System, req.User)
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(int64(maxTokens)),
		Input:           responses.ResponseNewParamsInputUnion{OfString: openai.String(input)},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	var out Response
	err := retryWithBackoff(ctx, 3, func() error {
		resp, err := o.client.Responses.New(ctx, params)
		if err != nil {
			return classify(err)
		}
		if resp == nil {
			return fmt.Errorf("empty response from OpenAI API")
		}

		out = Response{
			Content:      resp.OutputText(),
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		}
		return nil
	})

	return out, err
}
