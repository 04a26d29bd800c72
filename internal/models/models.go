package models

import "fmt"

// Info describes a model's capacity and pricing.
type Info struct {
	Provider        string
	Name            string
	ContextWindow   int
	MaxOutputTokens int
	// Pricing is expressed in USD per million tokens.
	InputCostPerM  float64
	OutputCostPerM float64
}

// DefaultContextWindow is assumed for models not in the registry.
const DefaultContextWindow = 128000

var registry = []Info{
	{Provider: "anthropic", Name: "claude-sonnet-4-6", ContextWindow: 200000, MaxOutputTokens: 64000, InputCostPerM: 3.00, OutputCostPerM: 15.00},
	{Provider: "anthropic", Name: "claude-opus-4-6", ContextWindow: 200000, MaxOutputTokens: 32000, InputCostPerM: 15.00, OutputCostPerM: 75.00},
	{Provider: "anthropic", Name: "claude-haiku-4-5", ContextWindow: 200000, MaxOutputTokens: 64000, InputCostPerM: 0.80, OutputCostPerM: 4.00},
	{Provider: "openai", Name: "gpt-5.2", ContextWindow: 400000, MaxOutputTokens: 128000, InputCostPerM: 1.25, OutputCostPerM: 10.00},
	{Provider: "openai", Name: "gpt-5.2-codex", ContextWindow: 400000, MaxOutputTokens: 128000, InputCostPerM: 1.25, OutputCostPerM: 10.00},
	{Provider: "openai", Name: "gpt-4.1-mini", ContextWindow: 1000000, MaxOutputTokens: 32768, InputCostPerM: 0.40, OutputCostPerM: 1.60},
	{Provider: "openai", Name: "o3-mini", ContextWindow: 200000, MaxOutputTokens: 100000, InputCostPerM: 1.10, OutputCostPerM: 4.40},
	{Provider: "gemini", Name: "gemini-3-pro-preview", ContextWindow: 1000000, MaxOutputTokens: 65536, InputCostPerM: 1.25, OutputCostPerM: 10.00},
	{Provider: "gemini", Name: "gemini-2.5-pro", ContextWindow: 1000000, MaxOutputTokens: 65536, InputCostPerM: 1.25, OutputCostPerM: 10.00},
	{Provider: "gemini", Name: "gemini-2.5-flash", ContextWindow: 1000000, MaxOutputTokens: 65536, InputCostPerM: 0.30, OutputCostPerM: 2.50},
	{Provider: "openrouter", Name: "anthropic/claude-sonnet-4-6", ContextWindow: 200000, MaxOutputTokens: 64000, InputCostPerM: 3.00, OutputCostPerM: 15.00},
	{Provider: "openrouter", Name: "meta-llama/llama-3.3-70b-instruct", ContextWindow: 131072, MaxOutputTokens: 16384, InputCostPerM: 0.12, OutputCostPerM: 0.30},
	{Provider: "openrouter", Name: "deepseek/deepseek-chat-v3", ContextWindow: 163840, MaxOutputTokens: 16384, InputCostPerM: 0.25, OutputCostPerM: 1.00},
}

// Lookup returns registry info for a provider/model pair.
// Unknown models get a conservative default context window and zero pricing.
func Lookup(provider, name string) Info {
	for _, m := range registry {
		if m.Provider == provider && m.Name == name {
			return m
		}
	}
	return Info{
		Provider:      provider,
		Name:          name,
		ContextWindow: DefaultContextWindow,
	}
}

// All returns the full registry, grouped in declaration order.
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Cost computes the dollar cost for a token count split.
func (m Info) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1e6*m.InputCostPerM + float64(outputTokens)/1e6*m.OutputCostPerM
}

// FormatCost renders a dollar amount the way reports display it.
func FormatCost(usd float64) string {
	return fmt.Sprintf("$%.4f USD", usd)
}
