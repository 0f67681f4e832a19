package ocr

import (
	"context"
	"strings"
)

// Provider selects which recognition backend handles the invocation.
type Provider int

const (
	ProviderLocal Provider = iota
	ProviderGoogleVision
	ProviderOpenAI
)

func (p Provider) String() string {
	switch p {
	case ProviderGoogleVision:
		return "google"
	case ProviderOpenAI:
		return "openai"
	default:
		return "local"
	}
}

// ResolveProvider maps the CLI provider argument to a Provider. The value is
// trimmed and lower-cased; anything unrecognized falls back to the local
// engine, matching the long-standing CLI behavior.
func ResolveProvider(arg string) Provider {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "google":
		return ProviderGoogleVision
	case "openai":
		return ProviderOpenAI
	default:
		return ProviderLocal
	}
}

// Engine turns an image on disk into recognized text.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
	Close() error
}
