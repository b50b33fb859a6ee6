package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/graemejk/StA-Slides/internal/batch"
	"github.com/graemejk/StA-Slides/internal/providers"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var providerName string
	var model string
	var temperature float64

	cmd := &cobra.Command{
		Use:   "analyze <image> [prompt]",
		Short: "Analyze a single slide image",
		Long: `Sends one image to the model with an optional custom prompt and prints the
raw model response. Useful for trying out prompts before a batch run.`,
		Example: `  # Describe an image
  sta-slides analyze photo.jpg

  # Ask a specific question
  sta-slides analyze photo.jpg 'What colors are in this image?'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := args[0]

			prompt := batch.DefaultPrompt
			if len(args) == 2 {
				prompt = args[1]
			}

			format, ok := batch.ImageFormat(imagePath)
			if !ok {
				return fmt.Errorf("unsupported image format: %s", imagePath)
			}

			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			provider, err := newProvider(providerName)
			if err != nil {
				return err
			}
			if model == "" {
				model = defaultModel(providerName)
				if providerName == "gemini" {
					// The lighter model is plenty for ad-hoc single calls
					model = "gemini-2.5-flash-lite"
				}
			}

			slog.Info("Analyzing image", "path", imagePath, "format", format, "provider", providerName, "model", model)

			result, err := provider.AnalyzeImage(cmd.Context(), providers.Config{
				Model:       model,
				Temperature: temperature,
				Prompt:      prompt,
			}, providers.Image{Data: data, Format: format})
			if err != nil {
				return err
			}

			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&providerName, "provider", "p", "gemini", "LLM provider (gemini, openai, or ollama)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name (defaults to provider's default)")
	cmd.Flags().Float64VarP(&temperature, "temperature", "t", 0.1, "Sampling temperature")

	return cmd
}
