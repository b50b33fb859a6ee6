package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/google/generative-ai-go/genai"
	"github.com/graemejk/StA-Slides/internal/providers"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Gemini is a provider for Google Gemini
type Gemini struct{}

// New returns a new Gemini provider
func New() *Gemini {
	return &Gemini{}
}

// APIKey returns the configured Gemini API key, or an error when it is not
// set. Callers that need the key before any processing starts (the batch
// driver) use this for a fail-fast check.
func APIKey() (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	return apiKey, nil
}

// AnalyzeImage sends one image plus the prompt to Gemini and returns the raw
// response text
func (g *Gemini) AnalyzeImage(ctx context.Context, config providers.Config, img providers.Image) (string, error) {
	apiKey, err := APIKey()
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)
	model.SetTemperature(float32(config.Temperature))

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(img.Format, img.Data),
		genai.Text(config.Prompt),
	)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}

// classifyError surfaces the HTTP status and message of API-level failures so
// the batch driver can log which stage failed and keep going
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("gemini quota exhausted (status %d): %s: %w", apiErr.Code, apiErr.Message, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("gemini authentication failed (status %d): %s: %w", apiErr.Code, apiErr.Message, err)
	case http.StatusNotFound:
		return fmt.Errorf("gemini model not found (status %d): %s: %w", apiErr.Code, apiErr.Message, err)
	default:
		return fmt.Errorf("gemini API error (status %d): %s: %w", apiErr.Code, apiErr.Message, err)
	}
}
