package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"handwriting-ocr/internal/config"
	"handwriting-ocr/internal/ocr"
	"handwriting-ocr/internal/pipeline"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handwriting-ocr <image_path> [provider]",
		Short: "Extract text from a handwriting image",
		Long: `Extract text from an image of handwriting.

The optional provider argument selects the backend:
  (default)  local Tesseract engine (TESSERACT_CMD overrides the binary)
  google     Google Vision document text detection (needs GOOGLE_OCR_KEY)
  openai     OpenAI multimodal transcription (needs OPENAI_API_KEY,
             OPENAI_MODEL overrides the model)

Recognized text goes to stdout; failures print one line to stderr and exit
with a code identifying the failed stage.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return ocr.Errorf(ocr.StageUsage, "missing image path")
			}
			// Extra arguments beyond the provider are ignored.
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			providerArg := ""
			if len(args) > 1 {
				providerArg = args[1]
			}

			text, err := pipeline.Run(config.FromEnv(), args[0], providerArg)
			if err != nil {
				return err
			}
			if text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}
}

// Execute runs the root command and maps any failure to its exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ocr.ExitCode(err)
	}
	return 0
}
