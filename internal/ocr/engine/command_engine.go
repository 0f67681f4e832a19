package engine

import (
	"context"
	"fmt"
	"os/exec"

	"handwriting-ocr/internal/image"
	"handwriting-ocr/internal/logger"
	"handwriting-ocr/internal/ocr"
)

// CommandEngine recognizes text by running an external tesseract binary,
// typically named through the TESSERACT_CMD override.
type CommandEngine struct {
	command string
	loader  *image.Loader
}

func NewCommandEngine(command string) (*CommandEngine, error) {
	if _, err := exec.LookPath(command); err != nil {
		return nil, ocr.Wrap(ocr.StageDependency, fmt.Errorf("tesseract binary %q not found: %w", command, err))
	}
	return &CommandEngine{command: command, loader: image.NewLoader()}, nil
}

func (c *CommandEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := c.loader.Validate(imagePath); err != nil {
		return "", ocr.Wrap(ocr.StageImageOpen, err)
	}

	logger.DebugLog("[command]: running %s on %s", c.command, imagePath)
	out, err := exec.CommandContext(ctx, c.command, imagePath, "stdout", "quiet").Output()
	if err != nil {
		return "", ocr.Wrap(ocr.StageRecognition, fmt.Errorf("running %s: %w", c.command, err))
	}
	return string(out), nil
}

func (c *CommandEngine) Close() error {
	return nil
}
