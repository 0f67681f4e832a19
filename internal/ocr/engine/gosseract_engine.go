package engine

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"handwriting-ocr/internal/image"
	"handwriting-ocr/internal/logger"
	"handwriting-ocr/internal/ocr"
)

// GosseractEngine recognizes text with the in-process Tesseract binding.
type GosseractEngine struct {
	loader *image.Loader
}

// NewGosseractEngine probes the Tesseract installation before returning an
// engine, so a broken install surfaces as a dependency failure instead of a
// recognition one.
func NewGosseractEngine() (*GosseractEngine, error) {
	if _, err := gosseract.GetAvailableLanguages(); err != nil {
		return nil, ocr.Wrap(ocr.StageDependency, fmt.Errorf("tesseract binding unavailable: %w", err))
	}
	return &GosseractEngine{loader: image.NewLoader()}, nil
}

func (g *GosseractEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := g.loader.Validate(imagePath); err != nil {
		return "", ocr.Wrap(ocr.StageImageOpen, err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	client.SetPageSegMode(gosseract.PSM_AUTO)
	client.SetImage(imagePath)

	logger.DebugLog("[gosseract]: recognizing %s", imagePath)
	text, err := client.Text()
	if err != nil {
		return "", ocr.Wrap(ocr.StageRecognition, fmt.Errorf("extracting text from %s: %w", imagePath, err))
	}
	return text, nil
}

func (g *GosseractEngine) Close() error {
	return nil
}
