// Package provider constructs chat providers by name. Each subpackage
// wraps one vendor SDK behind the ace.ChatProvider interface; this
// package is the factory the front end uses to pick one from
// configuration.
package provider

import (
	"context"
	"fmt"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/provider/anthropic"
	"github.com/illyshaieb/ace/provider/google"
	"github.com/illyshaieb/ace/provider/openai"
)

// New creates a chat provider for the named vendor with the given API
// key.
func New(ctx context.Context, name ace.Provider, apiKey string) (ace.ChatProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("provider %s: api key is empty", name)
	}
	switch name {
	case ace.ProviderAnthropic:
		return anthropic.New(apiKey), nil
	case ace.ProviderOpenAI:
		return openai.New(apiKey), nil
	case ace.ProviderGoogle:
		return google.New(ctx, apiKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
