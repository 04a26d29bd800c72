// Package providers implements LLM provider clients behind the Generator
// interface. Clients are selected from a lookup table by provider name;
// credentials are resolved from the environment into an explicit
// ClientConfig that travels through call chains.
package providers
