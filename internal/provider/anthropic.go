package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// ArithmeticModel is the small model the arithmetic runner asks.
	ArithmeticModel anthropic.Model = "claude-3-haiku-20240307"
	// ResearchModel is the tool-capable model behind research sessions.
	ResearchModel anthropic.Model = "claude-3-5-sonnet-20241022"
)

// Settings carries the optional client overrides. Zero values defer to the
// SDK, which reads ANTHROPIC_API_KEY and ANTHROPIC_BASE_URL from the env.
type Settings struct {
	APIKey  string
	BaseURL string
}

// NewAnthropicClient returns the process's single client.
func NewAnthropicClient(s Settings, extra ...option.RequestOption) *anthropic.Client {
	var opts []option.RequestOption
	if s.APIKey != "" {
		opts = append(opts, option.WithAPIKey(s.APIKey))
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	opts = append(opts, extra...)
	c := anthropic.NewClient(opts...)
	return &c
}
