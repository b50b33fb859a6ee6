package cmd

import (
	"fmt"
	"os"

	"github.com/graemejk/StA-Slides/internal/gemini"
	"github.com/graemejk/StA-Slides/internal/ollama"
	"github.com/graemejk/StA-Slides/internal/openai"
	"github.com/graemejk/StA-Slides/internal/providers"
)

// newProvider resolves a provider name to an implementation and fails fast
// when its credentials are missing, so a batch never starts only to have
// every call bounce off a missing API key.
func newProvider(name string) (providers.Provider, error) {
	switch name {
	case "gemini":
		if _, err := gemini.APIKey(); err != nil {
			return nil, err
		}
		return gemini.New(), nil
	case "openai":
		if _, err := openai.APIKey(); err != nil {
			return nil, err
		}
		return openai.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// defaultModel picks the model for a provider when --model is not given
func defaultModel(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-2.5-flash"
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}
