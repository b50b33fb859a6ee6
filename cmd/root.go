package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sta-slides",
		Short: "Archival slide metadata extraction with Gemini vision",
		Long: `StA-Slides bootstraps catalogue records for scanned photographic slides.

Each slide image is sent to the Gemini API, which reads handwritten
annotations on the slide mount and describes the photograph. The response is
mapped into a fixed EAD-style record schema ready for import into a
collection management system.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newBatchCmd())

	return cmd
}
