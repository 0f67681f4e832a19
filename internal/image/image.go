package image

import (
	"fmt"

	"github.com/disintegration/imaging"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Validate decodes the image to confirm the file is readable and actually an
// image before an engine sees it. The decoded pixels are discarded; engines
// consume the file from disk.
func (l *Loader) Validate(path string) error {
	if _, err := imaging.Open(path); err != nil {
		return fmt.Errorf("opening image %s: %w", path, err)
	}
	return nil
}
