package pipeline

import (
	"context"
	"strings"

	"handwriting-ocr/internal/config"
	"handwriting-ocr/internal/logger"
	"handwriting-ocr/internal/ocr"
	"handwriting-ocr/internal/ocr/engine"
)

// Run performs one recognition: resolve the provider, build its engine and
// recognize the image. Every stage is terminal on failure; a failed stage
// never reaches the next one. The returned text is trimmed and may be empty,
// which is a success with no output.
func Run(cfg config.Config, imagePath, providerArg string) (string, error) {
	provider := ocr.ResolveProvider(providerArg)
	logger.DebugLog("Pipeline started with provider=%s, image=%s", provider, imagePath)

	eng, err := engine.New(provider, cfg)
	if err != nil {
		logger.DebugLog("Failed to create engine: %v", err)
		return "", err
	}
	defer func() {
		logger.DebugLog("Closing engine")
		eng.Close()
	}()

	text, err := eng.Recognize(context.Background(), imagePath)
	if err != nil {
		logger.DebugLog("Recognition failed: %v", err)
		return "", err
	}

	logger.DebugLog("Pipeline finished, %d bytes of text", len(text))
	return strings.TrimSpace(text), nil
}
