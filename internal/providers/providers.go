package providers

import (
	"context"
)

// Config represents the configuration for an LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Image is one slide scan to be analyzed. Format is the short image format
// name understood by the model API ("jpeg", "png", "gif", "bmp", "webp").
type Image struct {
	Data   []byte
	Format string
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	AnalyzeImage(ctx context.Context, config Config, img Image) (string, error)
}
