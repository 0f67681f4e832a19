package engine

import (
	"handwriting-ocr/internal/config"
	"handwriting-ocr/internal/ocr"
)

// New builds the engine for the resolved provider. The local provider runs
// the external binary when TESSERACT_CMD names one and the in-process
// binding otherwise.
func New(provider ocr.Provider, cfg config.Config) (ocr.Engine, error) {
	switch provider {
	case ocr.ProviderGoogleVision:
		return NewGoogleVisionEngine(cfg.GoogleKey)
	case ocr.ProviderOpenAI:
		return NewOpenAIEngine(cfg.OpenAIKey, cfg.OpenAIModel)
	default:
		if cfg.TesseractCmd != "" {
			return NewCommandEngine(cfg.TesseractCmd)
		}
		return NewGosseractEngine()
	}
}
