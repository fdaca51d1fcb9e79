package ace

import "context"

// Provider identifies a hosted model provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

// ChatProvider is the interface implemented by hosted model backends.
// A provider receives the full conversation and the tool declarations
// (via options) and returns either a text reply, tool calls, or both.
type ChatProvider interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
